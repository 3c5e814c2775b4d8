package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapDataSource_Nil(t *testing.T) {
	if WrapDataSource("count pets", nil) != nil {
		t.Fatal("wrapping nil must stay nil")
	}
}

func TestWrapDataSource_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDataSource("count pets", cause)

	if !IsDataSource(err) {
		t.Fatal("expected a data source error")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to stay reachable")
	}
}

func TestIsDataSource_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading dashboard: %w", WrapDataSource("count pets", errors.New("timeout")))
	if !IsDataSource(err) {
		t.Fatal("expected detection through wrapping")
	}

	if IsDataSource(ErrInvalidPeriod) {
		t.Fatal("filter errors are not data source errors")
	}
}
