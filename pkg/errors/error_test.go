package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestConstructors() {
	cause := errors.New("underlying error")

	tests := []struct {
		name      string
		err       *Error
		wantCode  ErrorCode
		wantMsg   string
		wantCause error
		wantText  string
	}{
		{
			name:     "New",
			err:      New(ErrCodeInvalidPeriod, "bad period"),
			wantCode: ErrCodeInvalidPeriod,
			wantMsg:  "bad period",
			wantText: "[108] bad period",
		},
		{
			name:     "Newf",
			err:      Newf(ErrCodeInvalidPeriod, "period must be positive, got %d", -1),
			wantCode: ErrCodeInvalidPeriod,
			wantMsg:  "period must be positive, got -1",
			wantText: "[108] period must be positive, got -1",
		},
		{
			name:      "Wrap",
			err:       Wrap(ErrCodeQueryFailed, "query failed", cause),
			wantCode:  ErrCodeQueryFailed,
			wantMsg:   "query failed",
			wantCause: cause,
			wantText:  "[202] query failed: underlying error",
		},
		{
			name:      "Wrapf",
			err:       Wrapf(ErrCodeNoDataFound, cause, "no bars in %s", "aapl.csv"),
			wantCode:  ErrCodeNoDataFound,
			wantMsg:   "no bars in aapl.csv",
			wantCause: cause,
			wantText:  "[204] no bars in aapl.csv: underlying error",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.wantCode, tt.err.Code)
			suite.Equal(tt.wantMsg, tt.err.Message)
			suite.Equal(tt.wantCause, tt.err.Cause)
			suite.Equal(tt.wantCause, tt.err.Unwrap())
			suite.Equal(tt.wantText, tt.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestGetCodeThroughChain() {
	inner := New(ErrCodeDataNotFound, "missing file")
	wrapped := fmt.Errorf("load: %w", inner)

	suite.Equal(ErrCodeDataNotFound, GetCode(wrapped))
	suite.True(HasCode(wrapped, ErrCodeDataNotFound))
	suite.False(HasCode(wrapped, ErrCodeQueryFailed))
}

func (suite *ErrorTestSuite) TestGetCodeOuterWins() {
	inner := New(ErrCodeDataNotFound, "missing file")
	outer := Wrap(ErrCodeRunFailed, "run failed", inner)

	suite.Equal(ErrCodeRunFailed, GetCode(outer))
}

func (suite *ErrorTestSuite) TestGetCodeForeignError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	err := Wrap(ErrCodeRunCancelled, "batch cancelled", context.Canceled)

	suite.True(Is(err, context.Canceled))

	var target *Error
	suite.True(As(err, &target))
	suite.Equal(ErrCodeRunCancelled, target.Code)
}
