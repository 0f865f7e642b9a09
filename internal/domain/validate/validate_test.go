package validate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/claritypay/clarity/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func validApplication() model.Application {
	return model.Application{
		ApplicantID:                "app-001",
		Age:                        35,
		AnnualIncome:               85000,
		DebtToIncomeRatio:          0.25,
		NumCreditLines:             4,
		NumLatePayments:            0,
		CreditUtilization:          0.2,
		MonthsSinceLastDelinquency: 24,
		NumCreditInquiries:         1,
		PurchaseAmount:             3500,
	}
}

func TestApplication(t *testing.T) {
	Convey("Given a valid application", t, func() {
		app := validApplication()

		Convey("When validating it", func() {
			vec, err := validate.Application(app)

			Convey("Then it should produce the positional feature vector", func() {
				So(err, ShouldBeNil)
				So(vec, ShouldHaveLength, model.FeatureCount)
				So(vec[model.FeatureAge], ShouldEqual, 35)
				So(vec[model.FeatureAnnualIncome], ShouldEqual, 85000)
				So(vec[model.FeatureDebtToIncome], ShouldEqual, 0.25)
				So(vec[model.FeaturePurchaseAmount], ShouldEqual, 3500)
			})
		})

		Convey("When the applicant ID is blank", func() {
			app.ApplicantID = "   "
			vec, err := validate.Application(app)

			Convey("Then it should reject the application naming applicant_id", func() {
				So(vec, ShouldBeNil)
				var verr *validate.Error
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "applicant_id")
			})
		})
	})

	Convey("Given applications with out-of-range fields", t, func() {
		cases := []struct {
			name   string
			mutate func(*model.Application)
			field  string
		}{
			{"age below 18", func(a *model.Application) { a.Age = 17 }, "age"},
			{"age above 100", func(a *model.Application) { a.Age = 101 }, "age"},
			{"negative income", func(a *model.Application) { a.AnnualIncome = -1 }, "annual_income"},
			{"debt-to-income above 5", func(a *model.Application) { a.DebtToIncomeRatio = 5.01 }, "debt_to_income_ratio"},
			{"negative credit lines", func(a *model.Application) { a.NumCreditLines = -1 }, "num_credit_lines"},
			{"negative late payments", func(a *model.Application) { a.NumLatePayments = -2 }, "num_late_payments"},
			{"utilization above 2", func(a *model.Application) { a.CreditUtilization = 2.5 }, "credit_utilization"},
			{"negative delinquency months", func(a *model.Application) { a.MonthsSinceLastDelinquency = -1 }, "months_since_last_delinquency"},
			{"negative inquiries", func(a *model.Application) { a.NumCreditInquiries = -1 }, "num_credit_inquiries"},
			{"negative purchase amount", func(a *model.Application) { a.PurchaseAmount = -100 }, "purchase_amount"},
		}

		for _, tc := range cases {
			Convey("When validating an application with "+tc.name, func() {
				app := validApplication()
				tc.mutate(&app)
				vec, err := validate.Application(app)

				Convey("Then it should reject it naming the offending field", func() {
					So(vec, ShouldBeNil)
					var verr *validate.Error
					So(errors.As(err, &verr), ShouldBeTrue)
					So(verr.Field, ShouldEqual, tc.field)
				})
			})
		}
	})

	Convey("Given applications at the inclusive boundaries", t, func() {
		Convey("When age is exactly 18 or 100", func() {
			for _, age := range []int{18, 100} {
				app := validApplication()
				app.Age = age
				_, err := validate.Application(app)

				Convey(fmt.Sprintf("Then the application with age %d should pass", age), func() {
					So(err, ShouldBeNil)
				})
			}
		})

		Convey("When zero-minimum fields are exactly zero", func() {
			app := validApplication()
			app.AnnualIncome = 0
			app.DebtToIncomeRatio = 0
			app.CreditUtilization = 0
			app.PurchaseAmount = 0
			_, err := validate.Application(app)

			Convey("Then the application should pass", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
