package lotto

import "fmt"

// GenType은 게임 번호 선택 방식입니다 (자동/수동/반자동)
type GenType int

const (
	GenAuto GenType = iota
	GenManual
	GenSemiAuto
)

// genTypeLabels는 선택 방식의 표시용 이름 매핑입니다
var genTypeLabels = map[GenType]string{
	GenAuto:     "자동",
	GenManual:   "수동",
	GenSemiAuto: "반자동",
}

func (g GenType) String() string {
	if label, ok := genTypeLabels[g]; ok {
		return label
	}
	return fmt.Sprintf("GenType(%d)", int(g))
}

// ParseGenType은 설정 문자열을 GenType으로 변환합니다
func ParseGenType(s string) (GenType, error) {
	switch s {
	case "auto", "":
		return GenAuto, nil
	case "manual":
		return GenManual, nil
	case "semiauto":
		return GenSemiAuto, nil
	}
	return GenAuto, fmt.Errorf("알 수 없는 번호 선택 방식: %q", s)
}

// wireCode는 서버로 전송하는 genType 코드를 반환합니다.
// 자동 코드는 포털 버전에 따라 "0" 또는 "3"으로 바뀌어 설정값으로 받습니다.
// 수동("1")과 반자동("2")은 버전과 무관하게 고정입니다.
func (g GenType) wireCode(autoCode string) string {
	switch g {
	case GenManual:
		return "1"
	case GenSemiAuto:
		return "2"
	default:
		if autoCode == "" {
			return "0"
		}
		return autoCode
	}
}

// KeyMaterial은 로그인 암호화에 쓰는 RSA 공개키 재료입니다.
// 로그인 시도마다 새로 받아오며 절대 캐시하지 않습니다.
type KeyMaterial struct {
	Modulus        string // 16진수
	PublicExponent string // 16진수
}

// RoundInfo는 회차별 당첨 정보입니다
type RoundInfo struct {
	Round   int    `json:"round"`   // 회차
	Date    string `json:"date"`    // 추첨일 (YYYY-MM-DD)
	Numbers [6]int `json:"numbers"` // 당첨번호 6개
	BonusNo int    `json:"bonusNo"` // 보너스번호
}

// RoundResult는 당첨 결과 조회 페이지의 한 행입니다
type RoundResult struct {
	Round   int
	Numbers [6]int
	BonusNo int
}

// GameSelection은 게임 1장의 번호 선택입니다.
// Numbers는 수동일 때에만 채워지며 오름차순 6개 번호입니다.
type GameSelection struct {
	GenType GenType
	Numbers []int
}

// PurchasedGame은 구매 완료된 게임 1장입니다
type PurchasedGame struct {
	Slot        string // A~E
	GenTypeCode string // 서버가 돌려준 genType 코드
	Numbers     []int
}

// PurchaseResult는 구매 성공 시의 결과입니다
type PurchaseResult struct {
	Round         int       // 구매 회차
	AmountCharged int       // 결제 금액
	Barcodes      [6]string // 구매 바코드
	Games         []PurchasedGame
	ResultCode    string
	ResultMessage string
	Remaining     int  // 구매 후 잔여 예치금
	LowBalance    bool // 잔여 예치금으로 다음 구매가 불가능한지
	DryRun        bool
}

// PerGameNumbers는 게임별 번호 배열을 반환합니다 (구매 이력 저장용)
func (r *PurchaseResult) PerGameNumbers() [][]int {
	numbers := make([][]int, 0, len(r.Games))
	for _, game := range r.Games {
		numbers = append(numbers, game.Numbers)
	}
	return numbers
}

// 게임 슬롯 표기 (A~E)
var slotAlphabet = []string{"A", "B", "C", "D", "E"}

// FormatMoney는 숫자를 천 단위 구분자가 있는 문자열로 변환합니다
func FormatMoney(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	str := fmt.Sprintf("%d", amount)
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return sign + result
}
