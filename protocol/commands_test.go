package protocol

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEncodeNoArgumentCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{name: "measure", got: EncodeMeasure(), want: "D"},
		{name: "zero", got: EncodeZero(), want: "Z"},
		{name: "memory store", got: EncodeMemoryStore(), want: "OM"},
		{name: "memory clear last", got: EncodeMemoryClearLast(), want: "OC0"},
		{name: "memory clear all", got: EncodeMemoryClearAll(), want: "OC1"},
		{name: "power off", got: EncodePowerOff(), want: "Q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.got) != tt.want {
				t.Errorf("line = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestEncodeUnitSet(t *testing.T) {
	tests := []struct {
		name    string
		unit    Unit
		want    string
		wantErr bool
	}{
		{name: "newton", unit: UnitNewton, want: "N"},
		{name: "kilogram-force", unit: UnitKilogramForce, want: "K"},
		{name: "unknown letter", unit: Unit('X'), wantErr: true},
		{name: "zero value", unit: Unit(0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := EncodeUnitSet(tt.unit)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsArgumentError(err) {
					t.Errorf("error = %v, want ArgumentError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(line) != tt.want {
				t.Errorf("line = %q, want %q", line, tt.want)
			}
		})
	}
}

func TestEncodeModeSet(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		want    string
		wantErr bool
	}{
		{name: "realtime", mode: ModeRealtime, want: "T"},
		{name: "peak", mode: ModePeak, want: "P"},
		{name: "unknown letter", mode: Mode('X'), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := EncodeModeSet(tt.mode)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsArgumentError(err) {
					t.Errorf("error = %v, want ArgumentError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(line) != tt.want {
				t.Errorf("line = %q, want %q", line, tt.want)
			}
		})
	}
}

func TestEncodeLimitPoints(t *testing.T) {
	tests := []struct {
		name    string
		high    decimal.Decimal
		low     decimal.Decimal
		want    string
		wantErr bool
	}{
		{
			name: "typical values",
			high: decimal.RequireFromString("100"),
			low:  decimal.RequireFromString("42.5"),
			want: "E00100.0000042.50",
		},
		{
			name: "both zero",
			high: decimal.Zero,
			low:  decimal.Zero,
			want: "E00000.0000000.00",
		},
		{
			name: "maximum encodable value",
			high: decimal.RequireFromString("99999.99"),
			low:  decimal.RequireFromString("99999"),
			want: "E99999.9999999.00",
		},
		{
			name:    "high above field width",
			high:    decimal.RequireFromString("999999"),
			low:     decimal.Zero,
			wantErr: true,
		},
		{
			name:    "low above field width",
			high:    decimal.Zero,
			low:     decimal.RequireFromString("100000"),
			wantErr: true,
		},
		{
			name:    "negative value",
			high:    decimal.RequireFromString("-1"),
			low:     decimal.Zero,
			wantErr: true,
		},
		{
			name:    "too many fractional digits",
			high:    decimal.RequireFromString("1.234"),
			low:     decimal.Zero,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := EncodeLimitPoints(tt.high, tt.low)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsArgumentError(err) {
					t.Errorf("error = %v, want ArgumentError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(line) != tt.want {
				t.Errorf("line = %q, want %q", line, tt.want)
			}
			if len(line) != 1+2*LimitFieldWidth {
				t.Errorf("line length = %d, want %d", len(line), 1+2*LimitFieldWidth)
			}
		})
	}
}
