package allsports

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want flexString
	}{
		{name: "string", raw: `{"v":" 757 "}`, want: "757"},
		{name: "number", raw: `{"v":757}`, want: "757"},
		{name: "float", raw: `{"v":0.8}`, want: "0.8"},
		{name: "null", raw: `{"v":null}`, want: ""},
		{name: "absent", raw: `{}`, want: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out struct {
				V flexString `json:"v"`
			}
			require.NoError(t, sonic.Unmarshal([]byte(tc.raw), &out))
			assert.Equal(t, tc.want, out.V)
		})
	}
}

func TestBlockPresence(t *testing.T) {
	t.Parallel()

	type payload struct {
		Stats block[[]wireStatistic]              `json:"statistics"`
		Score block[map[string][]wireQuarterScore] `json:"scores"`
	}

	var absent payload
	require.NoError(t, sonic.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Stats.present)
	assert.False(t, absent.Score.present)

	var null payload
	require.NoError(t, sonic.Unmarshal([]byte(`{"statistics":null,"scores":""}`), &null))
	assert.False(t, null.Stats.present)
	assert.False(t, null.Score.present)

	var empty payload
	require.NoError(t, sonic.Unmarshal([]byte(`{"statistics":[],"scores":[]}`), &empty))
	assert.True(t, empty.Stats.present)
	assert.True(t, empty.Score.present)
	assert.Empty(t, empty.Score.value)

	var broken payload
	assert.Error(t, sonic.Unmarshal([]byte(`{"scores":[1,2]}`), &broken))
}
