package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizsearch.app/leadagent/internal/http/handler"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

var _ = Describe("LeadHandler", func() {
	var (
		router *gin.Engine
		svc    *mockLeadService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockLeadService{}
		h := handler.NewLeadHandler(svc)
		router.POST("/process", h.Process)
		router.POST("/process-all", h.ProcessAll)
		router.POST("/update/:lead_id", h.UpdateStatus)
		router.GET("/seller/:seller_id", h.SellerQueue)
	})

	Describe("POST /process", func() {
		It("returns the processing summary on success", func() {
			svc.processInquiryFn = func(_ context.Context, inquiryID string) (*service.ProcessResult, error) {
				Expect(inquiryID).To(Equal("inq-123"))
				return &service.ProcessResult{
					LeadID:             42,
					QualificationScore: 85,
					AutoResponseSent:   true,
					SellerNotified:     true,
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/process", map[string]string{"inquiry_id": "inq-123"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["lead_id"]).To(Equal("42"))
			Expect(resp["qualification_score"]).To(BeNumerically("==", 85))
			Expect(resp["seller_notified"]).To(BeTrue())
			Expect(resp["message"]).To(Equal("Lead processed"))
		})

		It("flags an already processed inquiry in the message", func() {
			svc.processInquiryFn = func(_ context.Context, _ string) (*service.ProcessResult, error) {
				return &service.ProcessResult{LeadID: 42, AlreadyProcessed: true}, nil
			}

			w := doJSON(router, http.MethodPost, "/process", map[string]string{"inquiry_id": "inq-123"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Inquiry already processed"))
		})

		It("returns 404 for an unknown inquiry", func() {
			svc.processInquiryFn = func(_ context.Context, _ string) (*service.ProcessResult, error) {
				return nil, service.ErrInquiryNotFound
			}

			w := doJSON(router, http.MethodPost, "/process", map[string]string{"inquiry_id": "missing"})

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 when the database rejects the lead", func() {
			svc.processInquiryFn = func(_ context.Context, _ string) (*service.ProcessResult, error) {
				return nil, fmt.Errorf("%w: insert violates foreign key constraint", service.ErrLeadRejected)
			}

			w := doJSON(router, http.MethodPost, "/process", map[string]string{"inquiry_id": "inq-123"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("foreign key"))
		})

		It("returns 400 when inquiry_id is missing", func() {
			w := doJSON(router, http.MethodPost, "/process", map[string]string{})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when processing fails", func() {
			svc.processInquiryFn = func(_ context.Context, _ string) (*service.ProcessResult, error) {
				return nil, errors.New("connection reset")
			}

			w := doJSON(router, http.MethodPost, "/process", map[string]string{"inquiry_id": "inq-123"})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Internal server error"))
		})
	})

	Describe("POST /process-all", func() {
		It("reports the processed count", func() {
			svc.processAllPendingFn = func(_ context.Context) (*service.BatchResult, error) {
				return &service.BatchResult{Processed: 3}, nil
			}

			w := doJSON(router, http.MethodPost, "/process-all", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["processed"]).To(BeNumerically("==", 3))
		})
	})

	Describe("POST /update/:lead_id", func() {
		It("updates the status", func() {
			var gotID int64
			var gotStatus model.LeadStatus
			svc.updateStatusFn = func(_ context.Context, leadID int64, status model.LeadStatus) error {
				gotID = leadID
				gotStatus = status
				return nil
			}

			w := doJSON(router, http.MethodPost, "/update/42", map[string]string{"status": "contacted"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotID).To(Equal(int64(42)))
			Expect(gotStatus).To(Equal(model.LeadStatusContacted))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Lead status updated"))
		})

		It("returns 400 for an invalid status", func() {
			svc.updateStatusFn = func(_ context.Context, _ int64, _ model.LeadStatus) error {
				return service.ErrInvalidStatus
			}

			w := doJSON(router, http.MethodPost, "/update/42", map[string]string{"status": "archived"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("Invalid status"))
		})

		It("returns 400 for a malformed lead id", func() {
			w := doJSON(router, http.MethodPost, "/update/not-a-number", map[string]string{"status": "contacted"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a missing lead", func() {
			svc.updateStatusFn = func(_ context.Context, _ int64, _ model.LeadStatus) error {
				return service.ErrLeadNotFound
			}

			w := doJSON(router, http.MethodPost, "/update/99", map[string]string{"status": "contacted"})

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /seller/:seller_id", func() {
		It("returns the queue with its summary", func() {
			svc.sellerQueueFn = func(_ context.Context, sellerID string) ([]model.Lead, model.LeadSummary, error) {
				Expect(sellerID).To(Equal("seller-001"))
				return []model.Lead{
						{ID: 1, Status: model.LeadStatusAutoResponded},
						{ID: 2, Status: model.LeadStatusNew},
					}, model.LeadSummary{
						Total: 2, New: 1, AutoResponded: 1,
					}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/seller/seller-001", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["leads"]).To(HaveLen(2))
			summary := resp["summary"].(map[string]any)
			Expect(summary["total"]).To(BeNumerically("==", 2))
		})

		It("returns an empty queue as an empty list, not null", func() {
			svc.sellerQueueFn = func(_ context.Context, _ string) ([]model.Lead, model.LeadSummary, error) {
				return nil, model.LeadSummary{}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/seller/seller-x", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"leads":[]`))
		})
	})
})

func doJSON(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
