package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", want: "09:30"},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "10:75", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("09:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "10:00", add: 30, want: "10:30"},
		{name: "across hour", start: "10:45", add: 30, want: "11:15"},
		{name: "negative shift", start: "10:00", add: -60, want: "09:00"},
		{name: "past midnight", start: "23:30", add: 60, wantErr: true},
		{name: "below midnight", start: "00:10", add: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("11:00").IsBefore("10:00"))

	assert.True(t, TimeString("11:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Некорректные значения никогда не "раньше" и не "позже"
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("time column with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("plain string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:15"))
		assert.Equal(t, TimeString("14:15"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:00:00")))
		assert.Equal(t, TimeString("08:00"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2024, 1, 10, 12, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("12:45"), ts)
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
