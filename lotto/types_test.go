package lotto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGenType(t *testing.T) {
	cases := []struct {
		input   string
		want    GenType
		wantErr bool
	}{
		{input: "auto", want: GenAuto},
		{input: "", want: GenAuto},
		{input: "manual", want: GenManual},
		{input: "semiauto", want: GenSemiAuto},
		{input: "random", wantErr: true},
		{input: "AUTO", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseGenType(tc.input)
		if tc.wantErr {
			require.Error(t, err, "input=%q", tc.input)
			continue
		}
		require.NoError(t, err, "input=%q", tc.input)
		require.Equal(t, tc.want, got, "input=%q", tc.input)
	}
}

func TestGenTypeWireCode(t *testing.T) {
	// 수동/반자동 코드는 포털 버전과 무관하게 고정입니다
	require.Equal(t, "1", GenManual.wireCode("0"))
	require.Equal(t, "1", GenManual.wireCode("3"))
	require.Equal(t, "2", GenSemiAuto.wireCode("0"))
	require.Equal(t, "2", GenSemiAuto.wireCode("3"))

	// 자동 코드만 설정값을 따릅니다
	require.Equal(t, "0", GenAuto.wireCode("0"))
	require.Equal(t, "3", GenAuto.wireCode("3"))
	require.Equal(t, "0", GenAuto.wireCode(""))
}

func TestGenTypeString(t *testing.T) {
	require.Equal(t, "자동", GenAuto.String())
	require.Equal(t, "수동", GenManual.String())
	require.Equal(t, "반자동", GenSemiAuto.String())
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{50000, "50,000"},
		{1234567, "1,234,567"},
		{-5000, "-5,000"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatMoney(tc.amount), "amount=%d", tc.amount)
	}
}

func TestPerGameNumbers(t *testing.T) {
	result := &PurchaseResult{
		Games: []PurchasedGame{
			{Slot: "A", Numbers: []int{3, 7, 15, 22, 30, 41}},
			{Slot: "B", Numbers: []int{1, 2, 3, 4, 5, 6}},
		},
	}
	require.Equal(t, [][]int{
		{3, 7, 15, 22, 30, 41},
		{1, 2, 3, 4, 5, 6},
	}, result.PerGameNumbers())

	empty := &PurchaseResult{}
	require.Empty(t, empty.PerGameNumbers())
}
