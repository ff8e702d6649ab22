package absence_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-sirh/internal/absence"
	absenceerrors "go-sirh/internal/absence/errors"
	"go-sirh/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAbsenceService struct {
	CreateFn           func(ctx context.Context, p identity.Principal, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error)
	GetAllFn           func(ctx context.Context, p identity.Principal, filter absence.AbsenceFilter) ([]absence.AbsenceResponse, int64, error)
	GetByIDFn          func(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error)
	ApproveFn          func(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error)
	RejectFn           func(ctx context.Context, p identity.Principal, id string, req absence.RejectAbsenceRequest) (absence.AbsenceResponse, error)
	CancelFn           func(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error)
	BulkDecideFn       func(ctx context.Context, p identity.Principal, req absence.BulkDecideRequest) (absence.BulkDecideResponse, error)
	StatisticsByTypeFn func(ctx context.Context, p identity.Principal, from, to string) ([]absence.TypeCount, error)
	CurrentFn          func(ctx context.Context, p identity.Principal) ([]absence.AbsenceResponse, error)
	PlanningFn         func(ctx context.Context, p identity.Principal, filter absence.PlanningFilter) ([]absence.PlanningDay, error)
}

func (f *fakeAbsenceService) Create(ctx context.Context, p identity.Principal, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	return f.CreateFn(ctx, p, req)
}
func (f *fakeAbsenceService) GetAll(ctx context.Context, p identity.Principal, filter absence.AbsenceFilter) ([]absence.AbsenceResponse, int64, error) {
	return f.GetAllFn(ctx, p, filter)
}
func (f *fakeAbsenceService) GetByID(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error) {
	return f.GetByIDFn(ctx, p, id)
}
func (f *fakeAbsenceService) Approve(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error) {
	return f.ApproveFn(ctx, p, id)
}
func (f *fakeAbsenceService) Reject(ctx context.Context, p identity.Principal, id string, req absence.RejectAbsenceRequest) (absence.AbsenceResponse, error) {
	return f.RejectFn(ctx, p, id, req)
}
func (f *fakeAbsenceService) Cancel(ctx context.Context, p identity.Principal, id string) (absence.AbsenceResponse, error) {
	return f.CancelFn(ctx, p, id)
}
func (f *fakeAbsenceService) BulkDecide(ctx context.Context, p identity.Principal, req absence.BulkDecideRequest) (absence.BulkDecideResponse, error) {
	return f.BulkDecideFn(ctx, p, req)
}
func (f *fakeAbsenceService) StatisticsByType(ctx context.Context, p identity.Principal, from, to string) ([]absence.TypeCount, error) {
	return f.StatisticsByTypeFn(ctx, p, from, to)
}
func (f *fakeAbsenceService) Current(ctx context.Context, p identity.Principal) ([]absence.AbsenceResponse, error) {
	return f.CurrentFn(ctx, p)
}
func (f *fakeAbsenceService) Planning(ctx context.Context, p identity.Principal, filter absence.PlanningFilter) ([]absence.PlanningDay, error) {
	return f.PlanningFn(ctx, p, filter)
}

func newAbsenceTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestAbsenceHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		svc := &fakeAbsenceService{
			CreateFn: func(ctx context.Context, p identity.Principal, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
				assert.Equal(t, userID, p.UserID)
				assert.Equal(t, "ANNUAL", req.Type)
				return absence.AbsenceResponse{ID: uuid.New(), Type: req.Type, Status: absence.StatusPending}, nil
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		body := `{"type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		identity.SetPrincipal(c, identity.Principal{UserID: userID, Role: identity.RoleEmployee})

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown type rejected by binding", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := newAbsenceTestContext(t)

		body := `{"type":"HOLIDAY","start_date":"2026-09-07","end_date":"2026-09-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAbsenceHandler_GetAll(t *testing.T) {
	t.Run("success carries pagination meta", func(t *testing.T) {
		svc := &fakeAbsenceService{
			GetAllFn: func(ctx context.Context, p identity.Principal, filter absence.AbsenceFilter) ([]absence.AbsenceResponse, int64, error) {
				assert.Equal(t, 2, filter.Page)
				assert.Equal(t, 10, filter.Limit)
				return []absence.AbsenceResponse{{ID: uuid.New(), Status: absence.StatusPending}}, 45, nil
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		c.Request = httptest.NewRequest(http.MethodGet, "/absences?page=2&limit=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":45`)
		assert.Contains(t, w.Body.String(), `"totalPages":5`)
		assert.Contains(t, w.Body.String(), `"page":2`)
		assert.Contains(t, w.Body.String(), `"pageSize":10`)
	})
}

func TestAbsenceHandler_Reject(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		absenceID := uuid.New().String()
		svc := &fakeAbsenceService{
			RejectFn: func(ctx context.Context, p identity.Principal, id string, req absence.RejectAbsenceRequest) (absence.AbsenceResponse, error) {
				assert.Equal(t, absenceID, id)
				assert.Equal(t, "overlapping exam session", req.Reason)
				return absence.AbsenceResponse{Status: absence.StatusRejected, DecisionReason: req.Reason}, nil
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		body := `{"reason":"overlapping exam session"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences/"+absenceID+"/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: absenceID}}

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing reason rejected by binding", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := newAbsenceTestContext(t)

		c.Request = httptest.NewRequest(http.MethodPost, "/absences/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "x"}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non approver gets forbidden", func(t *testing.T) {
		svc := &fakeAbsenceService{
			RejectFn: func(ctx context.Context, p identity.Principal, id string, req absence.RejectAbsenceRequest) (absence.AbsenceResponse, error) {
				return absence.AbsenceResponse{}, absenceerrors.ErrNotApprover
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		body := `{"reason":"not yours to take"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences/x/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = []gin.Param{{Key: "id", Value: "x"}}

		h.Reject(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAbsenceHandler_BulkDecide(t *testing.T) {
	t.Run("success reports partial failures in body", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		svc := &fakeAbsenceService{
			BulkDecideFn: func(ctx context.Context, p identity.Principal, req absence.BulkDecideRequest) (absence.BulkDecideResponse, error) {
				assert.Len(t, req.AbsenceIDs, 2)
				return absence.BulkDecideResponse{
					Requested: 2,
					Processed: 1,
					Failed:    1,
					Results: []absence.BulkDecideRowResult{
						{AbsenceID: ids[0], Success: true},
						{AbsenceID: ids[1], Success: false, Error: "absence is not pending"},
					},
				}, nil
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		body := `{"absence_ids":["` + ids[0].String() + `","` + ids[1].String() + `"],"decision":"APPROVED"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences/bulk-decide", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.BulkDecide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "absence is not pending")
	})

	t.Run("empty id list rejected by binding", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := newAbsenceTestContext(t)

		body := `{"absence_ids":[],"decision":"APPROVED"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/absences/bulk-decide", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.BulkDecide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAbsenceHandler_Planning(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAbsenceService{
			PlanningFn: func(ctx context.Context, p identity.Principal, filter absence.PlanningFilter) ([]absence.PlanningDay, error) {
				assert.Equal(t, "2026-09-01", filter.From)
				assert.Equal(t, "2026-09-30", filter.To)
				assert.True(t, filter.IncludePending)
				return []absence.PlanningDay{{Date: "2026-09-01"}}, nil
			},
		}

		h := absence.NewHandler(svc)
		c, w := newAbsenceTestContext(t)

		c.Request = httptest.NewRequest(http.MethodGet, "/absences/planning?from=2026-09-01&to=2026-09-30&include_pending=true", nil)

		h.Planning(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing window rejected by binding", func(t *testing.T) {
		h := absence.NewHandler(&fakeAbsenceService{})
		c, w := newAbsenceTestContext(t)

		c.Request = httptest.NewRequest(http.MethodGet, "/absences/planning", nil)

		h.Planning(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
