package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

type fakeService struct {
	createFn  func(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error)
	decideFn  func(ctx context.Context, id, deciderID string, approve bool) (*booking.Booking, error)
	getByIDFn func(ctx context.Context, id, viewerID string) (*booking.Booking, error)
	listFn    func(ctx context.Context, req booking.ListRequest) ([]*booking.Booking, int, error)
}

func (f *fakeService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) Decide(ctx context.Context, id, deciderID string, approve bool) (*booking.Booking, error) {
	return f.decideFn(ctx, id, deciderID, approve)
}

func (f *fakeService) GetByID(ctx context.Context, id, viewerID string) (*booking.Booking, error) {
	return f.getByIDFn(ctx, id, viewerID)
}

func (f *fakeService) List(ctx context.Context, req booking.ListRequest) ([]*booking.Booking, int, error) {
	return f.listFn(ctx, req)
}

func (f *fakeService) Project(context.Context, *item.Item, string) (booking.Projection, error) {
	return booking.Projection{}, nil
}

const (
	callerID  = "00000000-0000-0000-0000-0000000000a1"
	bookingID = "00000000-0000-0000-0000-0000000000e1"
	itemID    = "00000000-0000-0000-0000-0000000000d1"
)

func newRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("userID", callerID)
		c.Next()
	}
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), identity, pass)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sample() *booking.Booking {
	return &booking.Booking{
		ID:          bookingID,
		ItemID:      itemID,
		ItemName:    "Drill",
		BookerID:    callerID,
		BookerName:  "Alice",
		ItemOwnerID: "owner",
		Start:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:      booking.StatusWaiting,
	}
}

func TestHandler_Create(t *testing.T) {
	var got booking.CreateRequest
	svc := &fakeService{
		createFn: func(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
			got = req
			return sample(), nil
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/v1/bookings",
		`{"item_id":"`+itemID+`","start":"2026-03-02T00:00:00Z","end":"2026-03-03T00:00:00Z"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, callerID, got.BookerID)
	assert.Equal(t, itemID, got.ItemID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, "Drill", resp.Item.Name)
	assert.Equal(t, "Alice", resp.Booker.Name)
}

func TestHandler_Create_BadBody(t *testing.T) {
	r := newRouter(&fakeService{})

	w := do(r, http.MethodPost, "/v1/bookings", `{"item_id":"not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create_DomainError(t *testing.T) {
	svc := &fakeService{
		createFn: func(context.Context, booking.CreateRequest) (*booking.Booking, error) {
			return nil, booking.ErrOwnItem
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodPost, "/v1/bookings",
		`{"item_id":"`+itemID+`","start":"2026-03-02T00:00:00Z","end":"2026-03-03T00:00:00Z"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), string(apperror.KindForbidden))
}

func TestHandler_Decide(t *testing.T) {
	var approved *bool
	svc := &fakeService{
		decideFn: func(_ context.Context, id, deciderID string, approve bool) (*booking.Booking, error) {
			assert.Equal(t, bookingID, id)
			assert.Equal(t, callerID, deciderID)
			approved = &approve
			b := sample()
			b.Status = booking.StatusRejected
			return b, nil
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, approved)
	assert.False(t, *approved)

	w = do(r, http.MethodPatch, "/v1/bookings/"+bookingID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Get_NotFound(t *testing.T) {
	svc := &fakeService{
		getByIDFn: func(context.Context, string, string) (*booking.Booking, error) {
			return nil, booking.ErrNotFound
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/bookings/"+bookingID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/v1/bookings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_List(t *testing.T) {
	var got booking.ListRequest
	svc := &fakeService{
		listFn: func(_ context.Context, req booking.ListRequest) ([]*booking.Booking, int, error) {
			got = req
			return []*booking.Booking{sample()}, 1, nil
		},
	}
	r := newRouter(svc)

	t.Run("Defaults", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/bookings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, booking.RoleBooker, got.Role)
		assert.Equal(t, booking.StateAll, got.State)
		assert.Equal(t, 0, got.From)
		assert.Equal(t, 10, got.Size)
		assert.JSONEq(t, `1`, string(mustField(t, w.Body.Bytes(), "total")))
	})

	t.Run("Owner", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/bookings/owner?state=future&from=4&size=2", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, booking.RoleOwner, got.Role)
		assert.Equal(t, booking.StateFuture, got.State)
		assert.Equal(t, 4, got.From)
		assert.Equal(t, 2, got.Size)
	})

	t.Run("UnknownState", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/bookings?state=UNSUPPORTED_STATUS", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown state: UNSUPPORTED_STATUS")
	})

	t.Run("InvalidPaging", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/bookings?from=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(r, http.MethodGet, "/v1/bookings?size=0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func mustField(t *testing.T, body []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	v, ok := m[key]
	require.True(t, ok, "missing field %q", key)
	return v
}
