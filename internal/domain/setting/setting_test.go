package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemSetting(t *testing.T) {
	s, err := NewSystemSetting("telegram", KeyTelegramGroupChatID, ValueTypeInt, "-100123", "")
	require.NoError(t, err)

	v, err := s.GetInt64Value()
	require.NoError(t, err)
	assert.Equal(t, int64(-100123), v)

	_, err = NewSystemSetting("telegram", "", ValueTypeInt, "1", "")
	assert.ErrorIs(t, err, ErrInvalidSettingKey)

	_, err = NewSystemSetting("telegram", "x", ValueType("yaml"), "1", "")
	assert.ErrorIs(t, err, ErrInvalidValueType)
}

func TestSystemSetting_BoolValue(t *testing.T) {
	s := ReconstructSystemSetting(1, "telegram", KeyTelegramEnabled, " true ", ValueTypeBool, "", time.Time{})
	b, err := s.GetBoolValue()
	require.NoError(t, err)
	assert.True(t, b)

	empty := ReconstructSystemSetting(2, "telegram", KeyTelegramEnabled, "", ValueTypeBool, "", time.Time{})
	assert.False(t, empty.HasValue())
	b, err = empty.GetBoolValue()
	require.NoError(t, err)
	assert.False(t, b)
}
