package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "layout not found",
			expected: "NOT_FOUND: layout not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "grid width must be positive",
			expected: "INVALID_ARGUMENT: grid width must be positive",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "no valid boss room position",
			expected: "FAILED_PRECONDITION: no valid boss room position",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("layout not found").
		WithMeta("layout_id", "layout_123").
		WithMeta("owner_id", "player_456")

	s.Assert().Equal("layout_123", err.Meta["layout_id"])
	s.Assert().Equal("player_456", err.Meta["owner_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to get layout")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to get layout", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("key not found")
	wrapped := errors.Wrap(baseErr, "layout not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("layout not found", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "no-op"))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("gone")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain error")))
}

func (s *ErrorsTestSuite) TestTypeCheckers() {
	s.Assert().True(errors.IsNotFound(errors.NotFound("gone")))
	s.Assert().False(errors.IsNotFound(errors.Internal("boom")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgument("bad")))
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPrecondition("nope")))
	s.Assert().True(errors.IsResourceExhausted(errors.ResourceExhausted("budget spent")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code   errors.Code
		status int
	}{
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeFailedPrecondition, 412},
		{errors.CodeInternal, 500},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.status, tc.code.HTTPStatus())
		})
	}
}
