package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/professional"
)

type fakeProfileCreate func(ctx context.Context, actorID string, in professional.CreateProfileInput) (*models.ProfessionalProfile, error)

func (f fakeProfileCreate) Execute(ctx context.Context, actorID string, in professional.CreateProfileInput) (*models.ProfessionalProfile, error) {
	return f(ctx, actorID, in)
}

type fakeProfileUpdate func(ctx context.Context, actorID, id string, in professional.UpdateProfileInput) (*models.ProfessionalProfile, error)

func (f fakeProfileUpdate) Execute(ctx context.Context, actorID, id string, in professional.UpdateProfileInput) (*models.ProfessionalProfile, error) {
	return f(ctx, actorID, id, in)
}

type fakeMyProfile func(ctx context.Context, userID string) (*models.ProfessionalProfile, error)

func (f fakeMyProfile) Execute(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	return f(ctx, userID)
}

func professionalEngine(h *ProfessionalHandler, user gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(user)
	r.POST("/professionals", h.Create)
	r.GET("/professionals/me", h.Me)
	r.PUT("/professionals/:id", h.Update)
	return r
}

func TestProfessionalCreate_UserComesFromRole(t *testing.T) {
	var got professional.CreateProfileInput
	h := NewProfessionalHandler(
		fakeProfileCreate(func(_ context.Context, _ string, in professional.CreateProfileInput) (*models.ProfessionalProfile, error) {
			got = in
			return &models.ProfessionalProfile{ID: "pf-1", UserID: in.UserID, Bio: in.Bio, Active: true}, nil
		}),
		nil, nil,
	)

	// a professional cannot create someone else's profile
	w := do(professionalEngine(h, as("pro-1", domain.RoleProfessional)), http.MethodPost, "/professionals",
		map[string]string{"userId": "pro-2", "bio": "Barbeiro"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got.UserID != "pro-1" || got.Bio != "Barbeiro" {
		t.Fatalf("input = %+v", got)
	}
	var out dto.ProfessionalDTO
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.ID != "pf-1" || !out.Active {
		t.Fatalf("body = %s", w.Body.String())
	}

	w = do(professionalEngine(h, as("adm-1", domain.RoleAdmin)), http.MethodPost, "/professionals",
		map[string]string{"userId": "pro-2"})
	if w.Code != http.StatusCreated || got.UserID != "pro-2" {
		t.Fatalf("admin create: status %d, input %+v", w.Code, got)
	}

	w = do(professionalEngine(h, as("adm-1", domain.RoleAdmin)), http.MethodPost, "/professionals", map[string]string{})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_request" {
		t.Fatalf("admin without userId: status %d", w.Code)
	}
}

func TestProfessionalCreate_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"professional_already_exists": {domain.NewError(domain.KindInvalidState, "professional_already_exists"), http.StatusConflict},
		"not_a_professional":          {domain.NewError(domain.KindValidation, "not_a_professional"), http.StatusBadRequest},
		"service_not_found":           {domain.NewError(domain.KindNotFound, "service_not_found"), http.StatusNotFound},
	}
	for code, tc := range cases {
		t.Run(code, func(t *testing.T) {
			h := NewProfessionalHandler(
				fakeProfileCreate(func(context.Context, string, professional.CreateProfileInput) (*models.ProfessionalProfile, error) {
					return nil, tc.err
				}),
				nil, nil,
			)
			w := do(professionalEngine(h, as("adm-1", domain.RoleAdmin)), http.MethodPost, "/professionals",
				map[string]string{"userId": "pro-1"})
			if w.Code != tc.status || errorCode(t, w) != code {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestProfessionalUpdate(t *testing.T) {
	h := NewProfessionalHandler(nil,
		fakeProfileUpdate(func(_ context.Context, _ string, id string, in professional.UpdateProfileInput) (*models.ProfessionalProfile, error) {
			if id != "pf-1" {
				return nil, domain.NewError(domain.KindNotFound, "professional_not_found")
			}
			if in.Active == nil || *in.Active {
				t.Fatalf("isActive not forwarded: %+v", in)
			}
			return &models.ProfessionalProfile{ID: id, Active: false}, nil
		}),
		nil,
	)
	r := professionalEngine(h, as("adm-1", domain.RoleAdmin))

	w := do(r, http.MethodPut, "/professionals/pf-1", map[string]any{"isActive": false})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPut, "/professionals/abc", map[string]any{"isActive": false})
	if w.Code != http.StatusNotFound || errorCode(t, w) != "professional_not_found" {
		t.Fatalf("unknown id: status = %d", w.Code)
	}
}

func TestProfessionalMe(t *testing.T) {
	h := NewProfessionalHandler(nil, nil,
		fakeMyProfile(func(_ context.Context, userID string) (*models.ProfessionalProfile, error) {
			if userID != "pro-1" {
				return nil, domain.NewError(domain.KindNotFound, "professional_not_found")
			}
			return &models.ProfessionalProfile{ID: "pf-1", UserID: userID, Active: true}, nil
		}),
	)

	if w := do(professionalEngine(h, as("pro-1", domain.RoleProfessional)), http.MethodGet, "/professionals/me", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	w := do(professionalEngine(h, as("pro-2", domain.RoleProfessional)), http.MethodGet, "/professionals/me", nil)
	if w.Code != http.StatusNotFound || errorCode(t, w) != "professional_not_found" {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}
