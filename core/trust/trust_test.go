package trust_test

import (
	"time"

	"github.com/actually-app/actually/core/trust"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Score", func() {
	It("scores a brand-new unverified account at zero", func() {
		b := trust.Score(trust.Inputs{CreatedAt: time.Now()})
		Expect(b.Total).To(Equal(0))
		Expect(b.HumanVerification).To(Equal(0))
		Expect(b.Email).To(Equal(0))
		Expect(b.AccountAge).To(Equal(0))
	})

	It("weighs phone verification at 50", func() {
		b := trust.Score(trust.Inputs{PhoneVerified: true, CreatedAt: time.Now()})
		Expect(b.HumanVerification).To(Equal(50))
		Expect(b.Total).To(Equal(50))
	})

	It("weighs email verification at 10", func() {
		b := trust.Score(trust.Inputs{EmailVerified: true, CreatedAt: time.Now()})
		Expect(b.Email).To(Equal(10))
		Expect(b.Total).To(Equal(10))
	})

	It("awards 2 points per month of account age", func() {
		b := trust.Score(trust.Inputs{CreatedAt: time.Now().AddDate(0, -5, -1)})
		Expect(b.AccountAge).To(Equal(10))
	})

	It("caps account age at 20", func() {
		b := trust.Score(trust.Inputs{CreatedAt: time.Now().AddDate(-3, 0, 0)})
		Expect(b.AccountAge).To(Equal(20))
	})

	It("caps verified connections at 10", func() {
		b := trust.Score(trust.Inputs{VerifiedConnections: 37, CreatedAt: time.Now()})
		Expect(b.Connections).To(Equal(10))
	})

	It("counts connections below the cap one to one", func() {
		b := trust.Score(trust.Inputs{VerifiedConnections: 4, CreatedAt: time.Now()})
		Expect(b.Connections).To(Equal(4))
	})

	It("caps engagement at 10", func() {
		b := trust.Score(trust.Inputs{EngagementPoints: 500, CreatedAt: time.Now()})
		Expect(b.Engagement).To(Equal(10))
	})

	It("tops out at 100", func() {
		b := trust.Score(trust.Inputs{
			PhoneVerified:       true,
			EmailVerified:       true,
			VerifiedConnections: 99,
			EngagementPoints:    99,
			CreatedAt:           time.Now().AddDate(-2, 0, 0),
		})
		Expect(b.Total).To(Equal(100))
		Expect(b.HumanVerification + b.Email + b.AccountAge + b.Connections + b.Engagement).To(Equal(100))
	})

	It("treats a future creation date as zero age", func() {
		b := trust.Score(trust.Inputs{CreatedAt: time.Now().AddDate(0, 2, 0)})
		Expect(b.AccountAge).To(Equal(0))
	})
})
