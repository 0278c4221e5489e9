package bias

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Valid(t *testing.T) {
	for _, typ := range AllTypes() {
		assert.True(t, typ.Valid(), "type %q should be valid", typ)
	}
	assert.False(t, Type("halo_effect").Valid())
	assert.False(t, Type("").Valid())
}

func TestAllTypes_CountAndUniqueness(t *testing.T) {
	types := AllTypes()
	require.Len(t, types, 9)

	seen := make(map[Type]bool)
	for _, typ := range types {
		assert.False(t, seen[typ], "duplicate type %q", typ)
		seen[typ] = true
	}
}

func TestFeedback_Validate(t *testing.T) {
	valid := func() *Feedback {
		return &Feedback{
			Bias:      &Detected{Type: Confirmation, Severity: 0.7},
			Correct:   true,
			UserID:    "user-1",
			Timestamp: time.Now(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Feedback)
		wantErr error
	}{
		{"valid", func(f *Feedback) {}, nil},
		{"nil bias", func(f *Feedback) { f.Bias = nil }, ErrNilBias},
		{"unknown type", func(f *Feedback) { f.Bias.Type = "optimism" }, ErrUnknownType},
		{"empty user", func(f *Feedback) { f.UserID = "" }, ErrEmptyUserID},
		{"zero timestamp", func(f *Feedback) { f.Timestamp = time.Time{} }, ErrZeroTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAlertPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 0, AlertPriority("bogus").Rank())
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.42, Clamp01(0.42))

	// Clamping is idempotent under repeated extreme inputs.
	v := 5.0
	for i := 0; i < 10; i++ {
		v = Clamp01(v + 100)
	}
	assert.Equal(t, 1.0, v)
}

func TestClampRange(t *testing.T) {
	assert.Equal(t, 0.1, ClampRange(0.0, 0.1, 2.0))
	assert.Equal(t, 2.0, ClampRange(9.9, 0.1, 2.0))
	assert.Equal(t, 1.0, ClampRange(1.0, 0.1, 2.0))
}
