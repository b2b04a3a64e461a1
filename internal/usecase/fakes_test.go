package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type memListings struct {
	mu        sync.Mutex
	items     map[string]*entity.Listing
	views     map[string]int
	deleted   []string
	softGone  []string
	updateErr error
}

func newMemListings(listings ...*entity.Listing) *memListings {
	m := &memListings{items: make(map[string]*entity.Listing), views: make(map[string]int)}
	for _, l := range listings {
		c := *l
		m.items[l.ID] = &c
	}
	return m
}

func (m *memListings) Create(ctx context.Context, listing *entity.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if listing.ID == "" {
		listing.ID = "listing-" + time.Now().Format("150405.000000000")
	}
	c := *listing
	m.items[listing.ID] = &c
	return nil
}

func (m *memListings) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.items[id]
	if !ok || l.DeletedAt != nil {
		return nil, errors.NotFound("Listing", nil)
	}
	c := *l
	return &c, nil
}

func (m *memListings) get(id string) *entity.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id]
}

func (m *memListings) List(ctx context.Context, query repository.ListingQuery) (*repository.ListingPage, error) {
	active, _ := m.ListActive(ctx)
	return &repository.ListingPage{Listings: active}, nil
}

func (m *memListings) ListActive(ctx context.Context) ([]*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Listing
	for _, l := range m.items {
		if l.IsActive() {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memListings) ListBySeller(ctx context.Context, sellerID string, includeInactive bool) ([]*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Listing
	for _, l := range m.items {
		if l.SellerID == sellerID && (includeInactive || l.IsActive()) {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memListings) ListPromoted(ctx context.Context) ([]*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Listing
	for _, l := range m.items {
		if l.Promoted {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memListings) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	l, ok := m.items[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	for k, v := range fields {
		switch k {
		case "title":
			l.Title = v.(string)
		case "price":
			l.Price = v.(float64)
		case "sold":
			l.Sold = v.(bool)
		case "soldAt":
			if t, ok := v.(time.Time); ok {
				l.SoldAt = &t
			} else {
				l.SoldAt = nil
			}
		case "buyerId":
			l.BuyerID = v.(string)
		case "promoted":
			l.Promoted = v.(bool)
		case "status":
			l.Status = v.(entity.ListingStatus)
		case "rejectionReason":
			l.RejectionReason = v.(string)
		}
	}
	return nil
}

func (m *memListings) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memListings) SoftDelete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.items[id].DeletedAt = &now
	m.softGone = append(m.softGone, id)
	return nil
}

func (m *memListings) IncrementViews(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[id]++
	if l, ok := m.items[id]; ok {
		l.Views++
	}
	return nil
}

func (m *memListings) ApplyPromotion(ctx context.Context, id, planID string, start, end time.Time) (*entity.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	if l.IsPromoted(start) {
		return nil, errors.Conflict("Listing is already promoted", nil)
	}
	l.Promoted, l.PromotionType = true, planID
	l.PromotionStart, l.PromotionEnd = &start, &end
	c := *l
	return &c, nil
}

func (m *memListings) ClearPromotion(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].Promoted = false
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{items: make(map[string]*entity.User)}
	for _, u := range users {
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	c := *u
	return &c, nil
}

func (m *memUsers) Update(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[user.ID] = user
	return nil
}

func (m *memUsers) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	for k, v := range fields {
		switch k {
		case "preferences":
			u.Preferences = v.(entity.Preferences)
		case "billingProfile":
			u.BillingProfile = v.(*entity.BillingProfile)
		case "buyerRating":
			u.BuyerRating = v.(float64)
		case "buyerReviewCount":
			u.BuyerReviewCount = v.(int)
		case "sellerRating":
			u.SellerRating = v.(float64)
		case "sellerReviewCount":
			u.SellerReviewCount = v.(int)
		}
	}
	return nil
}

type memFavorites struct {
	mu    sync.Mutex
	items map[string]*entity.Favorite
}

func newMemFavorites() *memFavorites {
	return &memFavorites{items: make(map[string]*entity.Favorite)}
}

func (m *memFavorites) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[entity.FavoriteID(userID, listingID)]
	return ok, nil
}

func (m *memFavorites) Create(ctx context.Context, favorite *entity.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	favorite.ID = entity.FavoriteID(favorite.UserID, favorite.ListingID)
	m.items[favorite.ID] = favorite
	return nil
}

func (m *memFavorites) Delete(ctx context.Context, userID, listingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, entity.FavoriteID(userID, listingID))
	return nil
}

func (m *memFavorites) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Favorite
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out, int64(len(out)), nil
}

func (m *memFavorites) CountByUser(ctx context.Context, userID string) (int64, error) {
	_, total, err := m.ListByUser(ctx, userID, 0, 0)
	return total, err
}

type memConversations struct {
	mu       sync.Mutex
	items    map[string]*entity.Conversation
	messages []*entity.Message
	linked   map[string]bool
}

func newMemConversations() *memConversations {
	return &memConversations{items: make(map[string]*entity.Conversation), linked: make(map[string]bool)}
}

func (m *memConversations) Create(ctx context.Context, c *entity.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[c.ID]; ok {
		return errors.Conflict("Conversation already exists", nil)
	}
	c.UnreadCount = make(map[string]int)
	stored := *c
	stored.UnreadCount = make(map[string]int)
	m.items[c.ID] = &stored
	m.linked[c.ListingID] = true
	return nil
}

func (m *memConversations) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *c
	copied.UnreadCount = make(map[string]int, len(c.UnreadCount))
	for k, v := range c.UnreadCount {
		copied.UnreadCount[k] = v
	}
	return &copied, nil
}

func (m *memConversations) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	m.mu.Lock()
	ids := make([]string, 0, len(m.items))
	for id, c := range m.items {
		if c.HasParticipant(userID) {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()
	for _, id := range ids {
		c, _ := m.GetByID(ctx, id)
		out = append(out, c)
	}
	return out, nil
}

func (m *memConversations) ExistsForListing(ctx context.Context, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linked[listingID], nil
}

func (m *memConversations) AddMessage(ctx context.Context, message *entity.Message, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[message.ConversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	message.ID = time.Now().Format("150405.000000000")
	m.messages = append(m.messages, message)
	c.LastMessage = message.Text
	c.LastSenderID = message.SenderID
	c.UnreadCount[recipientID]++
	return nil
}

func (m *memConversations) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memConversations) MarkRead(ctx context.Context, conversationID, readerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[conversationID].UnreadCount[readerID] = 0
	return nil
}

type memInvoices struct {
	mu        sync.Mutex
	items     map[string]*entity.Invoice
	createErr error
}

func newMemInvoices() *memInvoices {
	return &memInvoices{items: make(map[string]*entity.Invoice)}
}

func (m *memInvoices) Create(ctx context.Context, invoice *entity.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.items[invoice.ID]; ok {
		return errors.Conflict("Invoice already exists", nil)
	}
	m.items[invoice.ID] = invoice
	return nil
}

func (m *memInvoices) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Invoice", nil)
	}
	c := *inv
	return &c, nil
}

func (m *memInvoices) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range m.items {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) ExistsForListing(ctx context.Context, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.items {
		if inv.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memInvoices) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].Status = status
	return nil
}

type memNotifications struct {
	mu        sync.Mutex
	items     []*entity.Notification
	createErr error
}

func (m *memNotifications) Create(ctx context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if n.ID == "" {
		n.ID = "n" + string(rune('a'+len(m.items)))
	}
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (m *memNotifications) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notification
	for _, n := range m.items {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memNotifications) CountUnread(ctx context.Context, userID string) (int64, error) {
	_, total, err := m.ListByUser(ctx, userID, true, 0, 0)
	return total, err
}

func (m *memNotifications) MarkRead(ctx context.Context, id string) error {
	n, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n.Read = true
	return nil
}

func (m *memNotifications) MarkAllRead(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	marked := 0
	for _, n := range m.items {
		if n.UserID == userID && !n.Read {
			n.Read = true
			marked++
		}
	}
	return marked, nil
}

func (m *memNotifications) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (m *memNotifications) forUser(userID string) []*entity.Notification {
	out, _, _ := m.ListByUser(context.Background(), userID, false, 0, 0)
	return out
}

type memReports struct {
	mu    sync.Mutex
	items map[string]*entity.Report
}

func newMemReports() *memReports {
	return &memReports{items: make(map[string]*entity.Report)}
}

func (m *memReports) Create(ctx context.Context, report *entity.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if report.ID == "" {
		report.ID = "report-" + report.ListingID + "-" + report.ReporterID
	}
	m.items[report.ID] = report
	return nil
}

func (m *memReports) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	c := *r
	return &c, nil
}

func (m *memReports) List(ctx context.Context, status entity.ReportStatus) ([]*entity.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Report
	for _, r := range m.items {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReports) Update(ctx context.Context, report *entity.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[report.ID] = report
	return nil
}

type memReviews struct {
	mu        sync.Mutex
	items     []*entity.Review
	createErr error
}

func (m *memReviews) Create(ctx context.Context, review *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.items = append(m.items, review)
	return nil
}

func (m *memReviews) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Review
	for _, r := range m.items {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

// nopCache never hits, so every read goes to the repository.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*entity.Listing, bool) { return nil, false }
func (nopCache) Set(context.Context, *entity.Listing) {}
func (nopCache) Invalidate(context.Context, string) {}
func (nopCache) Optimistic(ctx context.Context, _ *entity.Listing, write func(context.Context) error) error {
	return write(ctx)
}

// memCache keeps confirmed copies in memory.
type memCache struct {
	mu      sync.Mutex
	entries map[string]entity.Listing
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]entity.Listing)}
}

func (c *memCache) Get(_ context.Context, id string) (*entity.Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return &l, true
}

func (c *memCache) Set(_ context.Context, listing *entity.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[listing.ID] = *listing
}

func (c *memCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

func (c *memCache) Optimistic(ctx context.Context, next *entity.Listing, write func(context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}
	c.Set(ctx, next)
	return nil
}

func (c *memCache) has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

type push struct {
	UserID string
	Type   string
	Data   interface{}
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []push
}

func (p *recordingPusher) Push(userID, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, push{UserID: userID, Type: eventType, Data: data})
}

func (p *recordingPusher) ofType(eventType string) []push {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []push
	for _, e := range p.pushes {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type countingRecorder struct {
	mu         sync.Mutex
	favorites  map[bool]int
	promotions map[string]int
	reports    int
	invoices   int
	messages   int
	failures   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		favorites:  make(map[bool]int),
		promotions: make(map[string]int),
		failures:   make(map[string]int),
	}
}

func (r *countingRecorder) FavoriteToggled(favorited bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites[favorited]++
}

func (r *countingRecorder) PromotionPurchased(planID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promotions[planID]++
}

func (r *countingRecorder) ReportFiled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports++
}

func (r *countingRecorder) InvoiceIssued() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices++
}

func (r *countingRecorder) MessageSent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages++
}

func (r *countingRecorder) BestEffortFailed(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[step]++
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendInvoice(ctx context.Context, invoice *entity.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

type denyLimiter struct{ wait time.Duration }

func (d denyLimiter) Allow(string, string) (bool, time.Duration) { return false, d.wait }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func approvedListing(id, sellerID string) *entity.Listing {
	return &entity.Listing{
		ID:          id,
		SellerID:    sellerID,
		Title:       "Bicicleta Cross",
		Description: "Stare buna",
		Category:    "Sport, timp liber, arta",
		Price:       800,
		Currency:    entity.CurrencyRON,
		Images:      []string{"https://storage.googleapis.com/targ/listings/" + id + ".jpg"},
		Location:    "Cluj-Napoca, Cluj",
		Status:      entity.ListingStatusApproved,
		PublishedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func personalBilling() *entity.BillingProfile {
	return &entity.BillingProfile{
		Type:    entity.BillingPersonal,
		Name:    "Ana Pop",
		Email:   "ana@example.com",
		Address: "Str. Lunga 1",
		City:    "Cluj-Napoca",
		County:  "Cluj",
	}
}
