package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizsearch.app/leadagent/common/id"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

var _ = Describe("QuoteService", func() {
	var (
		svc       service.QuoteService
		listings  *mockListingStore
		profiles  *mockProfileStore
		requests  *mockQuoteRequestStore
		responses *mockQuoteResponseStore
		txRunner  *mockTxRunner
		ctx       context.Context
	)

	ownerA := "seller-a"
	ownerB := "seller-b"

	newService := func() service.QuoteService {
		return service.NewQuoteService(listings, profiles, requests, responses, txRunner, 5, 72)
	}

	twoListings := func(_ context.Context, _ model.ListingType, ids []string) ([]model.Listing, error) {
		nameA := "Chai Point Express"
		nameB := "Spice Route Cafe"
		return []model.Listing{
			{ID: ids[0], Name: &nameA, OwnerID: &ownerA},
			{ID: ids[1], Name: &nameB, OwnerID: &ownerB},
		}, nil
	}

	BeforeEach(func() {
		ctx = context.Background()
		listings = &mockListingStore{}
		profiles = &mockProfileStore{}
		requests = &mockQuoteRequestStore{}
		responses = &mockQuoteResponseStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{
			leads:          &mockLeadStore{},
			agentTasks:     &mockAgentTaskStore{},
			quoteRequests:  requests,
			quoteResponses: responses,
		}}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		Context("with a valid listing set", func() {
			It("should persist the request with one response per listing", func() {
				listings.listByIDsFn = twoListings
				var createdReq *model.QuoteRequest
				requests.createFn = func(_ context.Context, req *model.QuoteRequest) error {
					createdReq = req
					return nil
				}
				var createdResponses []model.QuoteResponse
				responses.createBatchFn = func(_ context.Context, batch []model.QuoteResponse) error {
					createdResponses = batch
					return nil
				}

				svc = newService()
				req, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:      "buyer-1",
					ListingIDs:  []string{"l-1", "l-2"},
					ListingType: model.ListingTypeBusiness,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(req.Status).To(Equal(model.QuoteRequestStatusCollecting))
				Expect(req.ExpiresAt).To(BeTemporally("~", time.Now().Add(72*time.Hour), time.Minute))
				Expect(createdReq).NotTo(BeNil())
				Expect(createdResponses).To(HaveLen(2))
				Expect(createdResponses[0].QuoteRequestID).To(Equal(req.ID))
				Expect(createdResponses[0].ResponderID).To(HaveValue(Equal(ownerA)))
				Expect(createdResponses[0].Status).To(Equal(model.QuoteResponseStatusSent))
			})

			It("should address sellers with the buyer's display name and budget", func() {
				listings.listByIDsFn = twoListings
				displayName := "Anita Desai"
				profiles.getByIDFn = func(_ context.Context, userID string) (*model.Profile, error) {
					Expect(userID).To(Equal("buyer-1"))
					return &model.Profile{ID: userID, DisplayName: &displayName}, nil
				}
				var batch []model.QuoteResponse
				responses.createBatchFn = func(_ context.Context, b []model.QuoteResponse) error {
					batch = b
					return nil
				}

				minBudget := int64(50_00_000)
				maxBudget := int64(2_00_00_000)
				timeline := "within 3 months"

				svc = newService()
				_, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:      "buyer-1",
					ListingIDs:  []string{"l-1", "l-2"},
					ListingType: model.ListingTypeBusiness,
					Requirements: model.QuoteRequirements{
						BudgetRange: &model.BudgetRange{Min: &minBudget, Max: &maxBudget},
						Timeline:    &timeline,
					},
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(batch[0].InitialMessage).To(ContainSubstring("Anita Desai is interested"))
				Expect(batch[0].InitialMessage).To(ContainSubstring("₹50 L - ₹2 Cr"))
				Expect(batch[0].InitialMessage).To(ContainSubstring("Timeline: within 3 months"))
			})

			It("should fall back to generic copy for an unknown buyer profile", func() {
				listings.listByIDsFn = twoListings
				var batch []model.QuoteResponse
				responses.createBatchFn = func(_ context.Context, b []model.QuoteResponse) error {
					batch = b
					return nil
				}

				svc = newService()
				_, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:      "buyer-ghost",
					ListingIDs:  []string{"l-1", "l-2"},
					ListingType: model.ListingTypeBusiness,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(batch[0].InitialMessage).To(ContainSubstring("A buyer is interested"))
			})
		})

		Context("listing set validation", func() {
			It("should reject an empty set", func() {
				svc = newService()
				_, err := svc.Create(ctx, service.CreateQuoteInput{UserID: "buyer-1"})

				Expect(err).To(MatchError(service.ErrNoListings))
			})

			It("should reject more than five listings", func() {
				svc = newService()
				_, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:     "buyer-1",
					ListingIDs: []string{"a", "b", "c", "d", "e", "f"},
				})

				Expect(err).To(MatchError(service.ErrTooManyListings))
			})

			It("should reject IDs that do not resolve to listings", func() {
				listings.listByIDsFn = func(_ context.Context, _ model.ListingType, ids []string) ([]model.Listing, error) {
					return []model.Listing{{ID: ids[0]}}, nil
				}

				svc = newService()
				_, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:     "buyer-1",
					ListingIDs: []string{"l-1", "l-missing"},
				})

				Expect(err).To(MatchError(service.ErrUnknownListings))
			})
		})

		Context("when the transaction fails", func() {
			It("should surface the error and persist nothing", func() {
				listings.listByIDsFn = twoListings
				txRunner.withTxFn = func(_ context.Context, _ func(service.StoreProvider) error) error {
					return errors.New("serialization failure")
				}

				svc = newService()
				req, err := svc.Create(ctx, service.CreateQuoteInput{
					UserID:     "buyer-1",
					ListingIDs: []string{"l-1", "l-2"},
				})

				Expect(err).To(HaveOccurred())
				Expect(req).To(BeNil())
			})
		})
	})

	Describe("Status", func() {
		It("should enrich responses with listing names and count progress", func() {
			requests.getByIDForUserFn = func(_ context.Context, requestID int64, userID string) (*model.QuoteRequest, error) {
				Expect(userID).To(Equal("buyer-1"))
				return &model.QuoteRequest{
					ID:         requestID,
					UserID:     userID,
					ListingIDs: []string{"l-1", "l-2"},
					Status:     model.QuoteRequestStatusCollecting,
				}, nil
			}
			responses.listByRequestFn = func(_ context.Context, requestID int64) ([]model.QuoteResponse, error) {
				answer := "Asking 1.2 Cr, open to discussion."
				return []model.QuoteResponse{
					{QuoteRequestID: requestID, ListingID: "l-1", Status: model.QuoteResponseStatusResponded, ResponseMessage: &answer},
					{QuoteRequestID: requestID, ListingID: "l-2", Status: model.QuoteResponseStatusSent},
				}, nil
			}
			listings.listByIDsFn = twoListings

			svc = newService()
			status, err := svc.Status(ctx, 9, "buyer-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(status.Responses).To(HaveLen(2))
			Expect(status.Responses[0].ListingName).To(Equal("Chai Point Express"))
			Expect(status.Responded).To(Equal(1))
			Expect(status.Pending).To(Equal(1))
		})

		It("should hide other users' requests behind not found", func() {
			svc = newService()
			_, err := svc.Status(ctx, 9, "intruder")

			Expect(err).To(MatchError(service.ErrQuoteRequestNotFound))
		})
	})

	Describe("ProcessPending", func() {
		It("should expire overdue requests and complete fully answered ones", func() {
			requests.expireOverdueFn = func(_ context.Context, _ time.Time) (int64, error) {
				return 2, nil
			}
			requests.listCollectingIDsFn = func(_ context.Context, _ time.Time) ([]int64, error) {
				return []int64{10, 11}, nil
			}
			responses.listByRequestFn = func(_ context.Context, requestID int64) ([]model.QuoteResponse, error) {
				if requestID == 10 {
					return []model.QuoteResponse{
						{Status: model.QuoteResponseStatusResponded},
						{Status: model.QuoteResponseStatusDeclined},
					}, nil
				}
				return []model.QuoteResponse{
					{Status: model.QuoteResponseStatusResponded},
					{Status: model.QuoteResponseStatusSent},
				}, nil
			}
			requests.markCompletedFn = func(_ context.Context, requestID int64) error {
				Expect(requestID).To(Equal(int64(10)))
				return nil
			}

			svc = newService()
			result, err := svc.ProcessPending(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Expired).To(Equal(int64(2)))
			Expect(result.Completed).To(Equal(1))
			Expect(requests.markCompletedCalls).To(Equal(1))
		})

		It("should not complete a request with no responses", func() {
			requests.listCollectingIDsFn = func(_ context.Context, _ time.Time) ([]int64, error) {
				return []int64{12}, nil
			}

			svc = newService()
			result, err := svc.ProcessPending(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Completed).To(BeZero())
			Expect(requests.markCompletedCalls).To(BeZero())
		})
	})

	Describe("List", func() {
		It("should return the 20 newest requests for the user", func() {
			requests.listByUserFn = func(_ context.Context, userID string, limit int32) ([]model.QuoteRequest, error) {
				Expect(userID).To(Equal("buyer-1"))
				Expect(limit).To(Equal(int32(20)))
				return []model.QuoteRequest{{ID: 1}, {ID: 2}}, nil
			}

			svc = newService()
			list, err := svc.List(ctx, "buyer-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})
	})
})
