package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizsearch.app/leadagent/internal/http/handler"
	"bizsearch.app/leadagent/internal/http/middleware"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

var _ = Describe("QuoteHandler", func() {
	var (
		router   *gin.Engine
		svc      *mockQuoteService
		profiles *mockProfileStore
	)

	buyer := &model.Profile{ID: "buyer-1"}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockQuoteService{}
		profiles = &mockProfileStore{
			getByAPITokenFn: func(_ context.Context, token string) (*model.Profile, error) {
				Expect(token).To(Equal("valid-token"))
				return buyer, nil
			},
		}

		h := handler.NewQuoteHandler(svc)
		group := router.Group("/quotes")
		group.POST("/process", h.ProcessPending)
		authed := group.Group("")
		authed.Use(middleware.RequireAuth(profiles))
		authed.POST("", h.Create)
		authed.GET("", h.List)
		authed.GET("/:quote_id", h.Status)
	})

	authedJSON := func(method, path string, payload any) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		var req *http.Request
		if payload != nil {
			raw, err := json.Marshal(payload)
			Expect(err).NotTo(HaveOccurred())
			req = httptest.NewRequest(method, path, bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(w, req)
		return w
	}

	Describe("POST /quotes", func() {
		It("creates a quote request for the authenticated buyer", func() {
			svc.createFn = func(_ context.Context, input service.CreateQuoteInput) (*model.QuoteRequest, error) {
				Expect(input.UserID).To(Equal("buyer-1"))
				Expect(input.ListingIDs).To(HaveLen(2))
				return &model.QuoteRequest{ID: 9, Status: model.QuoteRequestStatusCollecting}, nil
			}

			w := authedJSON(http.MethodPost, "/quotes", map[string]any{
				"listing_ids":  []string{"l-1", "l-2"},
				"listing_type": "business",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("collecting"))
		})

		It("rejects an unauthenticated request", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/quotes", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects more than five listings at the binding layer", func() {
			w := authedJSON(http.MethodPost, "/quotes", map[string]any{
				"listing_ids":  []string{"a", "b", "c", "d", "e", "f"},
				"listing_type": "business",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps validation errors from the service to 400", func() {
			svc.createFn = func(_ context.Context, _ service.CreateQuoteInput) (*model.QuoteRequest, error) {
				return nil, service.ErrUnknownListings
			}

			w := authedJSON(http.MethodPost, "/quotes", map[string]any{
				"listing_ids":  []string{"l-ghost"},
				"listing_type": "business",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /quotes/:quote_id", func() {
		It("returns the enriched status for the owner", func() {
			svc.statusFn = func(_ context.Context, requestID int64, userID string) (*service.QuoteStatus, error) {
				Expect(requestID).To(Equal(int64(9)))
				Expect(userID).To(Equal("buyer-1"))
				return &service.QuoteStatus{
					Request: &model.QuoteRequest{ID: 9, Status: model.QuoteRequestStatusCollecting},
					Responses: []service.QuoteResponseDetail{
						{QuoteResponse: model.QuoteResponse{ListingID: "l-1", Status: model.QuoteResponseStatusResponded}, ListingName: "Chai Point Express"},
					},
					Responded: 1,
					Pending:   0,
				}, nil
			}

			w := authedJSON(http.MethodGet, "/quotes/9", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["responded"]).To(BeNumerically("==", 1))
		})

		It("returns 404 for someone else's request", func() {
			svc.statusFn = func(_ context.Context, _ int64, _ string) (*service.QuoteStatus, error) {
				return nil, service.ErrQuoteRequestNotFound
			}

			w := authedJSON(http.MethodGet, "/quotes/9", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /quotes/process", func() {
		It("runs the sweep without auth", func() {
			svc.processPendingFn = func(_ context.Context) (*service.SweepResult, error) {
				return &service.SweepResult{Expired: 2, Completed: 1}, nil
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/quotes/process", nil)
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["expired"]).To(BeNumerically("==", 2))
			Expect(resp["completed"]).To(BeNumerically("==", 1))
		})
	})
})
