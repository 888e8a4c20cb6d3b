package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/theopenshift/openshift-web/internal/models"
)

// Call is one request the fake marketplace API received.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// TimesheetDecision records a POST /v1/timesheets/approve.
type TimesheetDecision struct {
	BookingID int64
	Approve   bool
	Amount    string
}

type injectedFailure struct {
	status int
	body   string
}

// FakeAPI is an in-memory stand-in for the marketplace REST API. It enforces
// the booking lifecycle server-side so tests exercise real status moves.
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	now           time.Time
	nextBookingID int64
	nextRequestID int64
	nextOrgID     int64
	bookings      map[int64]*models.Booking
	owners        map[int64]string
	requests      map[int64]*models.Request
	profiles      map[string]*models.StaffProfile
	availability  map[string]models.Availability
	orgs          map[string]*models.OrganizationProfile
	users         []models.AdminUser
	timesheets    []models.Timesheet
	decisions     []TimesheetDecision
	calls         []Call
	failures      map[string][]injectedFailure
}

// NewFakeAPI starts the fake on an httptest server that is closed when the
// test ends. The clock starts at 09:00 UTC on 3 March 2025.
func NewFakeAPI(t *testing.T) *FakeAPI {
	f := &FakeAPI{
		now:           time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		nextBookingID: 1,
		nextRequestID: 1,
		nextOrgID:     1,
		bookings:      map[int64]*models.Booking{},
		owners:        map[int64]string{},
		requests:      map[int64]*models.Request{},
		profiles:      map[string]*models.StaffProfile{},
		availability:  map[string]models.Availability{},
		orgs:          map[string]*models.OrganizationProfile{},
		failures:      map[string][]injectedFailure{},
	}
	f.Server = httptest.NewServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeAPI) URL() string { return f.Server.URL }

// Now returns the fake's clock.
func (f *FakeAPI) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake's clock forward.
func (f *FakeAPI) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// SeedBooking stores b as owned by the organization user ownerID. A zero ID
// is assigned the next free one.
func (f *FakeAPI) SeedBooking(ownerID string, b models.Booking) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		b.ID = f.nextBookingID
	}
	if b.ID >= f.nextBookingID {
		f.nextBookingID = b.ID + 1
	}
	if org, ok := f.orgs[ownerID]; ok && b.OrgID == 0 {
		b.OrgID = org.ID
	}
	stored := b
	f.bookings[b.ID] = &stored
	f.owners[b.ID] = ownerID
	return stored
}

// SeedRequest stores r. A zero ID is assigned the next free one.
func (f *FakeAPI) SeedRequest(r models.Request) models.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == 0 {
		r.ID = f.nextRequestID
	}
	if r.ID >= f.nextRequestID {
		f.nextRequestID = r.ID + 1
	}
	if r.Status == "" {
		r.Status = models.RequestStatusPending
	}
	stored := r
	f.requests[r.ID] = &stored
	return stored
}

func (f *FakeAPI) SeedProfile(p models.StaffProfile, a models.Availability) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := p
	f.profiles[p.ID] = &stored
	f.availability[p.ID] = a.Clone()
}

func (f *FakeAPI) SeedOrg(userID string, o models.OrganizationProfile) models.OrganizationProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == 0 {
		o.ID = f.nextOrgID
	}
	if o.ID >= f.nextOrgID {
		f.nextOrgID = o.ID + 1
	}
	stored := o
	f.orgs[userID] = &stored
	return stored
}

func (f *FakeAPI) SeedUsers(users ...models.AdminUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, users...)
}

// Fail makes the next call to method+path answer with status and body. Calls
// queue, so Fail twice fails the next two calls.
func (f *FakeAPI) Fail(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.failures[key] = append(f.failures[key], injectedFailure{status: status, body: body})
}

func (f *FakeAPI) Booking(id int64) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		return *b
	}
	return models.Booking{}
}

func (f *FakeAPI) Profile(userID string) (models.StaffProfile, models.Availability) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var p models.StaffProfile
	if sp, ok := f.profiles[userID]; ok {
		p = *sp
	}
	return p, f.availability[userID].Clone()
}

func (f *FakeAPI) Timesheets() []models.Timesheet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Timesheet(nil), f.timesheets...)
}

func (f *FakeAPI) Decisions() []TimesheetDecision {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TimesheetDecision(nil), f.decisions...)
}

// Calls returns every request received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount counts received requests matching method and path.
func (f *FakeAPI) CallCount(method, path string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeAPI) router() http.Handler {
	r := mux.NewRouter()
	r.Use(f.record)

	r.HandleFunc("/v1/bookings", f.createBooking).Methods(http.MethodPost)
	r.HandleFunc("/v1/bookings/org", f.orgBookings).Methods(http.MethodGet)
	r.HandleFunc("/v1/bookings/me", f.myBookings).Methods(http.MethodGet)
	r.HandleFunc("/v1/bookings/search", f.searchBookings).Methods(http.MethodGet)
	r.HandleFunc("/v1/bookings/check_in", f.checkIn).Methods(http.MethodPost)
	r.HandleFunc("/v1/bookings/{id:[0-9]+}", f.getBooking).Methods(http.MethodGet)
	r.HandleFunc("/v1/bookings/{id:[0-9]+}", f.updateBooking).Methods(http.MethodPatch)
	r.HandleFunc("/v1/bookings/{id:[0-9]+}/cancel", f.cancelBooking).Methods(http.MethodPost)

	r.HandleFunc("/v1/requests", f.listRequests).Methods(http.MethodGet)
	r.HandleFunc("/v1/requests/me", f.myRequests).Methods(http.MethodGet)
	r.HandleFunc("/v1/requests/send", f.sendRequest).Methods(http.MethodPost)
	r.HandleFunc("/v1/requests/respond", f.respondRequest).Methods(http.MethodPost)

	r.HandleFunc("/v1/timesheets/send", f.sendTimesheet).Methods(http.MethodPost)
	r.HandleFunc("/v1/timesheets/approve", f.approveTimesheet).Methods(http.MethodPost)

	r.HandleFunc("/v1/users/me", f.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/user", f.updateProfile).Methods(http.MethodPatch)
	r.HandleFunc("/v1/users/availability", f.getAvailability).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/availability", f.replaceAvailability).Methods(http.MethodPatch)

	r.HandleFunc("/v1/orgs/me", f.getOrg).Methods(http.MethodGet)
	r.HandleFunc("/v1/orgs/org", f.createOrg).Methods(http.MethodPost)
	r.HandleFunc("/v1/orgs/org", f.updateOrg).Methods(http.MethodPatch)
	r.HandleFunc("/v1/orgs/search", f.searchStaff).Methods(http.MethodGet)

	r.HandleFunc("/v1/admin/all_users", f.allUsers).Methods(http.MethodGet)
	r.HandleFunc("/v1/admin/all_orgs", f.allOrgs).Methods(http.MethodGet)
	r.HandleFunc("/v1/admin/auth0_user", f.identityUser).Methods(http.MethodGet)
	r.HandleFunc("/v1/admin/user", f.updateUser).Methods(http.MethodPatch)
	return r
}

// record logs the call, enforces a bearer token and serves injected
// failures.
func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			dec := json.NewDecoder(r.Body)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err == nil {
				body = raw
			}
		}
		r.Body = http.NoBody

		f.mu.Lock()
		f.calls = append(f.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		key := r.Method + " " + r.URL.Path
		var fail *injectedFailure
		if queued := f.failures[key]; len(queued) > 0 {
			fail = &queued[0]
			f.failures[key] = queued[1:]
		}
		f.mu.Unlock()

		if fail != nil {
			w.WriteHeader(fail.status)
			_, _ = w.Write([]byte(fail.body))
			return
		}
		if userFrom(r) == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, withBody(r, body))
	})
}

type bodyKey struct{}

func withBody(r *http.Request, body []byte) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), bodyKey{}, body))
}

// ---------------------------
// Bookings
// ---------------------------

func (f *FakeAPI) createBooking(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string    `json:"title"`
		Service     string    `json:"service"`
		Description string    `json:"description"`
		Notes       string    `json:"notes"`
		Address     string    `json:"address"`
		Suburb      string    `json:"suburb"`
		StartTime   time.Time `json:"start_time"`
		EndTime     time.Time `json:"end_time"`
		Rate        float64   `json:"rate"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	b := models.Booking{
		Title:       in.Title,
		Service:     in.Service,
		Description: in.Description,
		Notes:       in.Notes,
		Address:     in.Address,
		Suburb:      in.Suburb,
		StartTime:   &in.StartTime,
		EndTime:     &in.EndTime,
		Rate:        in.Rate,
		Status:      models.BookingStatusActive,
	}
	stored := f.SeedBooking(userFrom(r), b)
	writeJSON(w, http.StatusCreated, stored)
}

func (f *FakeAPI) updateBooking(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string    `json:"title"`
		Service     string    `json:"service"`
		Description string    `json:"description"`
		Notes       string    `json:"notes"`
		Address     string    `json:"address"`
		Suburb      string    `json:"suburb"`
		StartTime   time.Time `json:"start_time"`
		EndTime     time.Time `json:"end_time"`
		Rate        float64   `json:"rate"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.ownedBooking(w, r)
	if !ok {
		return
	}
	b.Title, b.Service, b.Description, b.Notes = in.Title, in.Service, in.Description, in.Notes
	b.Address, b.Suburb, b.Rate = in.Address, in.Suburb, in.Rate
	b.StartTime, b.EndTime = &in.StartTime, &in.EndTime
	writeJSON(w, http.StatusOK, b)
}

func (f *FakeAPI) getBooking(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[pathInt(r, "id")]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (f *FakeAPI) orgBookings(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for id, b := range f.bookings {
		if f.owners[id] == user {
			out = append(out, *b)
		}
	}
	writeJSON(w, http.StatusOK, sortBookings(out))
}

func (f *FakeAPI) myBookings(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[int64]bool{}
	for _, req := range f.requests {
		if req.UserID == user {
			seen[req.BookingID] = true
		}
	}
	out := []models.Booking{}
	for id, b := range f.bookings {
		if seen[id] || b.AssignedStaffID == user {
			out = append(out, *b)
		}
	}
	writeJSON(w, http.StatusOK, sortBookings(out))
}

func (f *FakeAPI) searchBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		if st := b.Status.Normalize(); st != models.BookingStatusActive && st != models.BookingStatusPending {
			continue
		}
		if s := q.Get("service"); s != "" && !strings.EqualFold(b.Service, s) {
			continue
		}
		if s := q.Get("suburb"); s != "" && !strings.EqualFold(b.Suburb, s) {
			continue
		}
		if d := q.Get("date"); d != "" && (b.StartTime == nil || b.StartTime.Format("2006-01-02") != d) {
			continue
		}
		out = append(out, *b)
	}
	writeJSON(w, http.StatusOK, sortBookings(out))
}

func (f *FakeAPI) cancelBooking(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.ownedBooking(w, r)
	if !ok {
		return
	}
	if b.Status.IsTerminal() {
		writeMessage(w, http.StatusConflict, "Booking can no longer be cancelled")
		return
	}
	b.Status = models.BookingStatusCancelledAlt
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) checkIn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BookingID int64 `json:"booking_id"`
		Checkout  bool  `json:"checkout"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[in.BookingID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.AssignedStaffID != user {
		writeMessage(w, http.StatusForbidden, "You are not assigned to this booking")
		return
	}
	now := f.now
	switch {
	case !in.Checkout && b.Status.Normalize() == models.BookingStatusConfirmed:
		b.Status = models.BookingStatusCheckedIn
		b.CheckInAt = &now
	case in.Checkout && b.Status.Normalize() == models.BookingStatusCheckedIn:
		b.Status = models.BookingStatusCheckedOut
		b.CheckOutAt = &now
	default:
		writeMessage(w, http.StatusConflict, fmt.Sprintf("Cannot check %s from status %s", direction(in.Checkout), b.Status))
		return
	}
	writeJSON(w, http.StatusOK, models.CheckoutSnapshot{
		BookingID:  b.ID,
		Status:     b.Status,
		CheckInAt:  b.CheckInAt,
		CheckOutAt: b.CheckOutAt,
		Rate:       b.Rate,
	})
}

func direction(checkout bool) string {
	if checkout {
		return "out"
	}
	return "in"
}

// ---------------------------
// Requests
// ---------------------------

func (f *FakeAPI) listRequests(w http.ResponseWriter, r *http.Request) {
	bookingID, _ := strconv.ParseInt(r.URL.Query().Get("booking_id"), 10, 64)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Request{}
	for _, req := range f.requests {
		if req.BookingID == bookingID {
			out = append(out, f.joined(*req))
		}
	}
	writeJSON(w, http.StatusOK, sortRequests(out))
}

func (f *FakeAPI) myRequests(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Request{}
	for _, req := range f.requests {
		if req.UserID == user {
			out = append(out, f.joined(*req))
		}
	}
	writeJSON(w, http.StatusOK, sortRequests(out))
}

func (f *FakeAPI) sendRequest(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BookingID int64   `json:"booking_id"`
		Rate      float64 `json:"rate"`
		Comment   string  `json:"comment"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[in.BookingID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	if st := b.Status.Normalize(); st != models.BookingStatusActive && st != models.BookingStatusPending {
		writeMessage(w, http.StatusConflict, "Booking is not open for requests")
		return
	}
	for _, req := range f.requests {
		if req.BookingID == in.BookingID && req.UserID == user {
			writeMessage(w, http.StatusConflict, "Request already sent")
			return
		}
	}
	req := &models.Request{
		ID:        f.nextRequestID,
		BookingID: in.BookingID,
		UserID:    user,
		Rate:      in.Rate,
		Comment:   in.Comment,
		Status:    models.RequestStatusPending,
	}
	f.nextRequestID++
	f.requests[req.ID] = req
	b.Status = models.BookingStatusPending
	writeJSON(w, http.StatusCreated, f.joined(*req))
}

func (f *FakeAPI) respondRequest(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RequestID int64 `json:"request_id"`
		Approve   bool  `json:"approve"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[in.RequestID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Request not found")
		return
	}
	if f.owners[req.BookingID] != user {
		writeMessage(w, http.StatusForbidden, "Not your booking")
		return
	}
	if req.Status != models.RequestStatusPending {
		writeMessage(w, http.StatusConflict, "Request already answered")
		return
	}
	b := f.bookings[req.BookingID]
	if !in.Approve {
		req.Status = models.RequestStatusRejected
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if st := b.Status.Normalize(); st != models.BookingStatusActive && st != models.BookingStatusPending {
		writeMessage(w, http.StatusConflict, "Booking already has staff assigned")
		return
	}
	req.Status = models.RequestStatusApproved
	b.Status = models.BookingStatusConfirmed
	b.AssignedStaffID = req.UserID
	b.Rate = req.Rate
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------
// Timesheets
// ---------------------------

func (f *FakeAPI) sendTimesheet(w http.ResponseWriter, r *http.Request) {
	var ts models.Timesheet
	if !decodeBody(w, r, &ts) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[ts.BookingID]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.Status.Normalize() != models.BookingStatusCheckedOut {
		writeMessage(w, http.StatusConflict, "Timesheet cannot be sent yet")
		return
	}
	b.Status = models.BookingStatusSentForApproval
	f.timesheets = append(f.timesheets, ts)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) approveTimesheet(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BookingID int64  `json:"booking_id"`
		Approve   bool   `json:"approve"`
		Amount    string `json:"amount"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[in.BookingID]
	if !ok || f.owners[in.BookingID] != user {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.Status.Normalize() != models.BookingStatusSentForApproval {
		writeMessage(w, http.StatusConflict, "No timesheet awaiting review")
		return
	}
	f.decisions = append(f.decisions, TimesheetDecision{BookingID: in.BookingID, Approve: in.Approve, Amount: in.Amount})
	if in.Approve {
		b.Status = models.BookingStatusPendingPayment
		b.Amount = in.Amount
	} else {
		b.Status = models.BookingStatusCheckedOut
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------
// Staff profile
// ---------------------------

func (f *FakeAPI) getProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[user]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (f *FakeAPI) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.StaffProfile
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[user]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Profile not found")
		return
	}
	in.ID, in.Email, in.PaymentOnboarded, in.ProfileImage = p.ID, p.Email, p.PaymentOnboarded, p.ProfileImage
	*p = in
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) getAvailability(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.availability[user]
	if !ok {
		a = models.Availability{}
	}
	writeJSON(w, http.StatusOK, a)
}

func (f *FakeAPI) replaceAvailability(w http.ResponseWriter, r *http.Request) {
	var in models.Availability
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	f.availability[user] = in
	f.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------
// Organizations
// ---------------------------

func (f *FakeAPI) getOrg(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[user]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Organization not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (f *FakeAPI) createOrg(w http.ResponseWriter, r *http.Request) {
	var in models.OrganizationProfile
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	if _, exists := f.orgs[user]; exists {
		f.mu.Unlock()
		writeMessage(w, http.StatusConflict, "Organization already exists")
		return
	}
	f.mu.Unlock()
	in.ID = 0
	stored := f.SeedOrg(user, in)
	writeJSON(w, http.StatusCreated, stored)
}

func (f *FakeAPI) updateOrg(w http.ResponseWriter, r *http.Request) {
	var in models.OrganizationProfile
	if !decodeBody(w, r, &in) {
		return
	}
	user := userFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[user]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Organization not found")
		return
	}
	in.ID, in.Rating = o.ID, o.Rating
	*o = in
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) searchStaff(w http.ResponseWriter, r *http.Request) {
	services := splitCSV(r.URL.Query().Get("services"))
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.StaffSearchResult{}
	for _, p := range f.profiles {
		if !containsAll(p.Services, services) {
			continue
		}
		out = append(out, models.StaffSearchResult{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Services:    p.Services,
			Preferences: p.Preferences,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

// ---------------------------
// Admin
// ---------------------------

func (f *FakeAPI) allUsers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.AdminUser{}, f.users...))
}

func (f *FakeAPI) allOrgs(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.OrganizationProfile{}
	for _, o := range f.orgs {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) identityUser(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("user_id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, models.IdentityUser{
				UserID:        u.ID,
				Email:         u.Email,
				EmailVerified: u.Verified,
				LoginsCount:   1,
			})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "User not found")
}

func (f *FakeAPI) updateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID  string          `json:"user_id"`
		Role    models.RoleType `json:"role"`
		Blocked *bool           `json:"blocked"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID != in.UserID {
			continue
		}
		if in.Role != "" {
			f.users[i].Role = in.Role
		}
		if in.Blocked != nil {
			f.users[i].Blocked = *in.Blocked
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeMessage(w, http.StatusNotFound, "User not found")
}

// Users returns the admin user list as the fake currently holds it.
func (f *FakeAPI) Users() []models.AdminUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AdminUser(nil), f.users...)
}

// ---------------------------
// helpers
// ---------------------------

// ownedBooking looks up the path booking and checks the caller owns it.
// Callers hold f.mu.
func (f *FakeAPI) ownedBooking(w http.ResponseWriter, r *http.Request) (*models.Booking, bool) {
	id := pathInt(r, "id")
	b, ok := f.bookings[id]
	if !ok || f.owners[id] != userFrom(r) {
		writeMessage(w, http.StatusNotFound, "Booking not found")
		return nil, false
	}
	return b, true
}

// joined fills the display-only booking status. Callers hold f.mu.
func (f *FakeAPI) joined(req models.Request) models.Request {
	if b, ok := f.bookings[req.BookingID]; ok {
		req.BookingStatus = b.Status
	}
	return req
}

// userFrom reads the subject of the bearer token without verifying it.
func userFrom(r *http.Request) string {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func pathInt(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	body, _ := r.Context().Value(bodyKey{}).([]byte)
	if len(body) == 0 {
		writeMessage(w, http.StatusBadRequest, "Missing request body")
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func sortBookings(in []models.Booking) []models.Booking {
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	return in
}

func sortRequests(in []models.Request) []models.Request {
	sort.Slice(in, func(i, j int) bool { return in[i].ID < in[j].ID })
	return in
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
