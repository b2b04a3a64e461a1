package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"targ/internal/domain/entity"
	"targ/internal/usecase"
)

func TestToggleFavorite(t *testing.T) {
	listings := newStubListings(listing("l1", "ana", "Bicicleta Cross", 800, entity.CurrencyRON))
	favorites := &stubFavorites{saved: make(map[string]bool)}
	h := NewFavoriteHandler(usecase.NewFavoriteUseCase(favorites, listings, nil))

	toggle := func(uid string) (int, envelope) {
		e := newEcho()
		e.POST("/v1/favorites/:listingId", h.ToggleFavorite, asUser(uid))
		rec, env := do(t, e, http.MethodPost, "/v1/favorites/l1", nil)
		return rec.Code, env
	}
	state := func(env envelope) bool {
		var body struct {
			IsFavorite bool `json:"is_favorite"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &body))
		return body.IsFavorite
	}

	code, env := toggle("dan")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, state(env))

	code, env = toggle("dan")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, state(env))

	code, _ = toggle("ana")
	assert.Equal(t, http.StatusBadRequest, code)
}
