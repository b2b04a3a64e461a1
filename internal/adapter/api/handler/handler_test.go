package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"targ/internal/adapter/api"
	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

// asUser stands in for the auth middleware.
func asUser(uid string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid != "" {
				c.Set("uid", uid)
			}
			return next(c)
		}
	}
}

func do(t *testing.T, e *echo.Echo, method, target string, body io.Reader) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// stubListings serves a fixed set of listings; methods a test does not need stay unimplemented.
type stubListings struct {
	repository.ListingRepository
	items map[string]*entity.Listing

	page      *repository.ListingPage
	lastQuery repository.ListingQuery
}

func (s *stubListings) List(_ context.Context, query repository.ListingQuery) (*repository.ListingPage, error) {
	s.lastQuery = query
	if s.page == nil {
		return &repository.ListingPage{Listings: []*entity.Listing{}}, nil
	}
	return s.page, nil
}

func newStubListings(listings ...*entity.Listing) *stubListings {
	s := &stubListings{items: make(map[string]*entity.Listing)}
	for _, l := range listings {
		s.items[l.ID] = l
	}
	return s
}

func (s *stubListings) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	if l, ok := s.items[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, errors.NotFound("Listing", nil)
}

func (s *stubListings) ListActive(context.Context) ([]*entity.Listing, error) {
	out := make([]*entity.Listing, 0, len(s.items))
	for _, id := range []string{"l1", "l2", "l3"} {
		if l, ok := s.items[id]; ok && l.IsActive() {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubFavorites struct {
	repository.FavoriteRepository
	mu    sync.Mutex
	saved map[string]bool
}

func (s *stubFavorites) Exists(_ context.Context, userID, listingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[userID+"_"+listingID], nil
}

func (s *stubFavorites) Create(_ context.Context, f *entity.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[f.UserID+"_"+f.ListingID] = true
	return nil
}

func (s *stubFavorites) Delete(_ context.Context, userID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, userID+"_"+listingID)
	return nil
}

func listing(id, seller, title string, price float64, currency entity.Currency) *entity.Listing {
	return &entity.Listing{
		ID:       id,
		SellerID: seller,
		Title:    title,
		Category: "sport",
		Price:    price,
		Currency: currency,
		Location: "Cluj-Napoca, Cluj",
		Status:   entity.ListingStatusApproved,
		Images:   []string{},
	}
}
