package lotto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAlwaysValid(t *testing.T) {
	gen := &Generator{}

	for i := 0; i < 200; i++ {
		numbers, err := gen.Generate(1)
		require.NoError(t, err)
		require.Len(t, numbers, 6)

		seen := make(map[int]bool)
		for j, n := range numbers {
			require.GreaterOrEqual(t, n, 1)
			require.LessOrEqual(t, n, 45)
			require.False(t, seen[n], "중복 번호: %v", numbers)
			seen[n] = true
			if j > 0 {
				require.Greater(t, n, numbers[j-1], "오름차순이 아님: %v", numbers)
			}
		}
	}
}

func TestGeneratePinnedNumbers(t *testing.T) {
	gen := &Generator{Pinned: map[int][]int{
		1: {3, 7, 15, 22, 30, 41},
		2: {10, 20},
	}}

	numbers, err := gen.Generate(1)
	require.NoError(t, err)
	require.Equal(t, []int{3, 7, 15, 22, 30, 41}, numbers)

	numbers, err = gen.Generate(2)
	require.NoError(t, err)
	require.Len(t, numbers, 6)
	require.Contains(t, numbers, 10)
	require.Contains(t, numbers, 20)

	// 고정 번호가 없는 슬롯은 전부 랜덤으로 채웁니다
	numbers, err = gen.Generate(3)
	require.NoError(t, err)
	require.Len(t, numbers, 6)
}

func TestParsePinned(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int
	}{
		{name: "정상 입력", raw: "3 7 15", want: []int{3, 7, 15}},
		{name: "범위 밖과 중복은 버림", raw: "0 46 7 7 12 abc", want: []int{7, 12}},
		{name: "빈 입력", raw: "   ", want: nil},
		{name: "6개 초과는 잘라냄", raw: "1 2 3 4 5 6 7 8", want: []int{1, 2, 3, 4, 5, 6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, parsePinned(tc.raw))
		})
	}
}

func TestGeneratorFromEnv(t *testing.T) {
	t.Setenv("LOTTO_GAME1", "5 11 23")
	t.Setenv("LOTTO_GAME2", "")

	gen := NewGeneratorFromEnv()
	require.Equal(t, []int{5, 11, 23}, gen.Pinned[1])
	require.NotContains(t, gen.Pinned, 2)
}
