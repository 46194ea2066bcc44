package resolve

import (
	"errors"
	"testing"
)

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr error
	}{
		{
			name:    "unknown kind returns ErrUnknownTargetKind",
			target:  Target{Kind: "polyfill", Path: "/x"},
			wantErr: ErrUnknownTargetKind,
		},
		{
			name:    "library without path returns ErrMissingTargetPath",
			target:  Target{Kind: TargetLibrary},
			wantErr: ErrMissingTargetPath,
		},
		{
			name:    "stub without path returns ErrMissingTargetPath",
			target:  Target{Kind: TargetStub},
			wantErr: ErrMissingTargetPath,
		},
		{
			name:    "disabled target needs no path",
			target:  Target{Kind: TargetDisabled},
			wantErr: nil,
		},
		{
			name:    "valid library target",
			target:  Target{Kind: TargetLibrary, Path: "/repo/node_modules/three"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRuleValidate(t *testing.T) {
	r := Rule{Specifier: "", Target: Target{Kind: TargetLibrary, Path: "/x"}}
	if !errors.Is(r.Validate(), ErrEmptySpecifier) {
		t.Fatalf("expected ErrEmptySpecifier, got %v", r.Validate())
	}

	r = Rule{Specifier: "three", Target: Target{Kind: TargetLibrary, Path: "/x"}}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
