package lotto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Generator는 게임 슬롯별 번호 6개를 생성합니다.
// 슬롯에 고정 번호가 지정되어 있으면 그 번호로 먼저 채우고,
// 나머지는 암호학적 난수로 채웁니다.
type Generator struct {
	// 슬롯 번호(1~5) → 고정 번호 목록
	Pinned map[int][]int
}

// NewGeneratorFromEnv는 LOTTO_GAME<n> 환경변수에서 고정 번호를 읽어
// 생성기를 만듭니다. 예: LOTTO_GAME1="3 7 15" → 1번 게임은 3,7,15 고정.
func NewGeneratorFromEnv() *Generator {
	pinned := make(map[int][]int)
	for slot := 1; slot <= 5; slot++ {
		raw := os.Getenv(fmt.Sprintf("LOTTO_GAME%d", slot))
		if raw == "" {
			continue
		}
		numbers := parsePinned(raw)
		if len(numbers) > 0 {
			pinned[slot] = numbers
		}
	}
	return &Generator{Pinned: pinned}
}

// parsePinned는 공백으로 구분된 번호 목록을 파싱합니다.
// 범위를 벗어나거나 중복된 번호는 버립니다.
func parsePinned(raw string) []int {
	var numbers []int
	seen := make(map[int]bool)
	for _, field := range strings.Fields(raw) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > 45 || seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
		if len(numbers) == 6 {
			break
		}
	}
	return numbers
}

// Generate는 슬롯의 번호 6개를 생성합니다.
// 항상 1~45 범위의 서로 다른 6개 번호를 오름차순으로 반환합니다.
func (g *Generator) Generate(slot int) ([]int, error) {
	numbers := make([]int, 0, 6)
	seen := make(map[int]bool)

	for _, n := range g.Pinned[slot] {
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}

	for len(numbers) < 6 {
		pick, err := rand.Int(rand.Reader, big.NewInt(45))
		if err != nil {
			return nil, fmt.Errorf("난수 생성 실패: %w", err)
		}
		n := int(pick.Int64()) + 1
		if seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)
	return numbers, nil
}
