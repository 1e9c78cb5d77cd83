package lotto

// Rank는 당첨 등수입니다. 0은 낙첨입니다.
type Rank int

// rankLabels는 등수의 표시용 문구 매핑입니다
var rankLabels = map[Rank]string{
	0: "낙첨",
	1: "1등",
	2: "2등",
	3: "3등",
	4: "4등",
	5: "5등",
}

func (r Rank) String() string {
	if label, ok := rankLabels[r]; ok {
		return label
	}
	return "낙첨"
}

// CheckWinning은 구매 번호와 당첨번호를 비교하여 등수를 판정합니다
func CheckWinning(purchased []int, draw *RoundInfo) (rank Rank, matchCount int, hasBonus bool) {
	for _, num := range purchased {
		for _, winning := range draw.Numbers {
			if num == winning {
				matchCount++
				break
			}
		}
		if num == draw.BonusNo {
			hasBonus = true
		}
	}

	// 등수: 6개 일치 1등, 5개+보너스 2등, 5개 3등, 4개 4등, 3개 5등
	switch matchCount {
	case 6:
		rank = 1
	case 5:
		if hasBonus {
			rank = 2
		} else {
			rank = 3
		}
	case 4:
		rank = 4
	case 3:
		rank = 5
	}

	return rank, matchCount, hasBonus
}
