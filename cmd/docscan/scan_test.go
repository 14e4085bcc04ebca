package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/papertrim/docscan/internal/detection"
	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/rectify"
)

func TestDecorateScanError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"no document", detection.ErrNoDocument, "--corners"},
		{"degenerate quad", rectify.ErrDegenerateQuad, "adjust the corners"},
		{"wrapped degenerate quad", errors.Join(rectify.ErrDegenerateQuad), "adjust the corners"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decorateScanError(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("decorated error lost its sentinel: %v", got)
			}
			if !strings.Contains(got.Error(), tt.wantHint) {
				t.Errorf("decorated error %q missing hint %q", got, tt.wantHint)
			}
		})
	}

	plain := errors.New("disk full")
	if got := decorateScanError(plain); got != plain {
		t.Errorf("unrelated error was altered: %v", got)
	}
}

func TestParseCorners(t *testing.T) {
	pts, err := parseCorners("100,100; 700,150 ;680,650;120,600")
	if err != nil {
		t.Fatalf("parseCorners failed: %v", err)
	}
	want := [4]geometry.Point{
		{X: 100, Y: 100}, {X: 700, Y: 150}, {X: 680, Y: 650}, {X: 120, Y: 600},
	}
	if pts != want {
		t.Errorf("parseCorners = %v, want %v", pts, want)
	}

	bad := []string{
		"",
		"1,2;3,4;5,6",
		"1,2;3,4;5,6;7,8;9,10",
		"1,2;3,4;5,6;seven,8",
		"1,2;3,4;5,6;7",
	}
	for _, in := range bad {
		if _, err := parseCorners(in); err == nil {
			t.Errorf("parseCorners(%q) accepted malformed input", in)
		}
	}
}
