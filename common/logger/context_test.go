package logger_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bizsearch.app/leadagent/common/logger"
)

var _ = Describe("LogFields", func() {
	It("merges fields across enrichment calls", func() {
		ctx := context.Background()
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			InquiryID: logger.Ptr("inq-123"),
			Component: "leadagent.pipeline",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			LeadID:   logger.Ptr(int64(42)),
			SellerID: logger.Ptr("seller-001"),
		})

		fields := logger.GetLogFields(ctx)
		Expect(fields.InquiryID).To(HaveValue(Equal("inq-123")))
		Expect(fields.LeadID).To(HaveValue(Equal(int64(42))))
		Expect(fields.SellerID).To(HaveValue(Equal("seller-001")))
		Expect(fields.Component).To(Equal("leadagent.pipeline"))
	})

	It("lets newer non-empty values take precedence", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			Component: "leadagent.pipeline",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			Component: "leadagent.pipeline.batch",
		})

		Expect(logger.GetLogFields(ctx).Component).To(Equal("leadagent.pipeline.batch"))
	})

	It("returns empty fields for an unenriched context", func() {
		fields := logger.GetLogFields(context.Background())
		Expect(fields.InquiryID).To(BeNil())
		Expect(fields.Component).To(BeEmpty())
	})
})

var _ = Describe("Truncate", func() {
	It("leaves short strings alone", func() {
		Expect(logger.Truncate("short", 10)).To(Equal("short"))
	})

	It("cuts long strings and marks the cut", func() {
		Expect(logger.Truncate("a very long inquiry message", 10)).To(Equal("a very lon..."))
	})
})
