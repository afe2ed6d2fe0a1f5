package loan_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/amirasaad/backoffice/webapi/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LoanTestSuite struct {
	testutils.E2ETestSuite
	adminToken    string
	bankID        uuid.UUID
	tellerToken   string
	customer      *user.User
	customerToken string
	account       *account.Account
	loanType      *loan.Type
}

func (s *LoanTestSuite) SetupTest() {
	_, s.adminToken = s.CreateSuperuser()
	s.bankID = s.CreateBank(s.adminToken)

	teller := s.CreateTestUser()
	s.ActivateUser(teller)
	s.Expect(http.StatusCreated, http.MethodPost,
		fmt.Sprintf("/bank/%s/tellers/%d", s.bankID, teller.ID), "", s.adminToken, nil)
	s.tellerToken = s.LoginUser(teller.Email)

	s.customer = s.CreateTestUser()
	s.ActivateUser(s.customer)
	s.customerToken = s.LoginUser(s.customer.Email)

	s.account = &account.Account{}
	s.Expect(http.StatusCreated, http.MethodPost, "/bank/"+s.bankID.String()+"/accounts",
		fmt.Sprintf(`{"user_id":%d,"money":0}`, s.customer.ID), s.tellerToken, s.account)

	s.loanType = &loan.Type{}
	s.Expect(http.StatusCreated, http.MethodPost, "/bank/"+s.bankID.String()+"/loan-types",
		fmt.Sprintf(`{"name":"Consumer %s","interest":10,"days":30}`, uuid.NewString()[:8]), s.adminToken, s.loanType)
}

func (s *LoanTestSuite) TestLoanTypes() {
	var types []loan.Type
	s.Expect(http.StatusOK, http.MethodGet, "/bank/"+s.bankID.String()+"/loan-types", "", "", &types)
	s.Require().Len(types, 1)
	s.Equal(10, types[0].Interest)

	s.Run("teller cannot create loan types", func() {
		s.Expect(http.StatusForbidden, http.MethodPost, "/bank/"+s.bankID.String()+"/loan-types",
			`{"name":"Nope","interest":1,"days":1}`, s.tellerToken, nil)
	})
	s.Run("negative interest", func() {
		s.Expect(http.StatusBadRequest, http.MethodPost, "/bank/"+s.bankID.String()+"/loan-types",
			`{"name":"Bad","interest":-1,"days":1}`, s.adminToken, nil)
	})
	s.Run("interest beyond integer range", func() {
		s.Expect(http.StatusBadRequest, http.MethodPost, "/bank/"+s.bankID.String()+"/loan-types",
			`{"name":"Huge","interest":3000000000,"days":1}`, s.adminToken, nil)
	})
}

func (s *LoanTestSuite) TestIssueAndCompensate() {
	var l loan.Loan
	s.Expect(http.StatusCreated, http.MethodPost, fmt.Sprintf("/account/%d/loans", s.account.ID),
		fmt.Sprintf(`{"loan_type_id":%d,"amount_out":200000}`, s.loanType.ID), s.tellerToken, &l)
	s.Equal(int64(220_000), l.AmountExpected)
	s.False(l.IsCovered)

	var a account.Account
	s.Expect(http.StatusOK, http.MethodGet, fmt.Sprintf("/account/%d", s.account.ID), "", s.tellerToken, &a)
	s.Equal(int64(200_000), a.Money)

	compensations := fmt.Sprintf("/loan/%d/compensations", l.ID)
	s.Run("over compensation is rejected", func() {
		s.Expect(http.StatusUnprocessableEntity, http.MethodPost, compensations, `{"amount":220001}`, s.tellerToken, nil)
	})

	var res struct {
		AmountExpected int64  `json:"amount_expected"`
		IsCovered      bool   `json:"is_covered"`
		State          string `json:"state"`
	}
	s.Expect(http.StatusCreated, http.MethodPost, compensations, `{"amount":120000}`, s.tellerToken, &res)
	s.Equal(int64(100_000), res.AmountExpected)
	s.Equal("OPEN", res.State)

	s.Expect(http.StatusCreated, http.MethodPost, compensations, `{"amount":100000}`, s.tellerToken, &res)
	s.True(res.IsCovered)
	s.Equal("COVERED", res.State)

	s.Run("covered loan takes no more payments", func() {
		s.Expect(http.StatusBadRequest, http.MethodPost, compensations, `{"amount":1}`, s.tellerToken, nil)
	})

	var mine []loan.Loan
	s.Expect(http.StatusOK, http.MethodGet, "/me/loans", "", s.customerToken, &mine)
	s.Require().Len(mine, 1)
	s.True(mine[0].IsCovered)
}

func (s *LoanTestSuite) TestApply() {
	path := fmt.Sprintf("/me/accounts/%d/loans", s.account.ID)
	var l loan.Loan
	s.Expect(http.StatusCreated, http.MethodPost, path,
		fmt.Sprintf(`{"loan_type_id":%d,"amount_out":150000}`, s.loanType.ID), s.customerToken, &l)
	s.Equal(int64(165_000), l.AmountExpected)

	var ls []loan.Loan
	s.Expect(http.StatusOK, http.MethodGet, path, "", s.customerToken, &ls)
	s.Len(ls, 1)

	s.Run("principal out of range", func() {
		s.Expect(http.StatusBadRequest, http.MethodPost, path,
			fmt.Sprintf(`{"loan_type_id":%d,"amount_out":5000001}`, s.loanType.ID), s.customerToken, nil)
	})
	s.Run("someone else's account", func() {
		s.Expect(http.StatusForbidden, http.MethodPost, path,
			fmt.Sprintf(`{"loan_type_id":%d,"amount_out":150000}`, s.loanType.ID), s.tellerToken, nil)
	})
	s.Run("loan type of another bank", func() {
		other := s.CreateBank(s.adminToken)
		var t loan.Type
		s.Expect(http.StatusCreated, http.MethodPost, "/bank/"+other.String()+"/loan-types",
			fmt.Sprintf(`{"name":"Other %s","interest":5,"days":10}`, uuid.NewString()[:8]), s.adminToken, &t)
		s.Expect(http.StatusBadRequest, http.MethodPost, path,
			fmt.Sprintf(`{"loan_type_id":%d,"amount_out":150000}`, t.ID), s.customerToken, nil)
	})
}

func TestLoanTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(LoanTestSuite))
}
