package lotto

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	mainInfoURL    = "https://www.dhlottery.co.kr/lt645/selectPstLt645Info.do"
	myPageURL      = "https://www.dhlottery.co.kr/mypage/selectUserMndp.do"
	gameResultURL  = "https://www.dhlottery.co.kr/gameResult.do?method=allWinPrint&gubun=byWin"
	maxResultRange = 20
)

// drawRecord는 회차 정보 응답의 레코드 하나입니다
type drawRecord struct {
	LtEpsd   int    `json:"ltEpsd"`   // 회차
	LtRflYmd string `json:"ltRflYmd"` // 추첨일 (YYYYMMDD)
	Tm1WnNo  int    `json:"tm1WnNo"`
	Tm2WnNo  int    `json:"tm2WnNo"`
	Tm3WnNo  int    `json:"tm3WnNo"`
	Tm4WnNo  int    `json:"tm4WnNo"`
	Tm5WnNo  int    `json:"tm5WnNo"`
	Tm6WnNo  int    `json:"tm6WnNo"`
	BnsWnNo  int    `json:"bnsWnNo"` // 보너스번호
}

// extractLastRound는 회차 정보 응답에서 가장 최근 회차를 골라냅니다.
// 레코드 중 회차 번호가 가장 큰 것이 최근 회차입니다.
func extractLastRound(payload string) (*RoundInfo, error) {
	var response struct {
		Data struct {
			List []drawRecord `json:"list"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return nil, &ParseError{What: "회차 정보 응답", Err: err}
	}
	if len(response.Data.List) == 0 {
		return nil, &ParseError{What: "회차 정보 응답", Err: fmt.Errorf("당첨 정보가 없습니다")}
	}

	latest := response.Data.List[0]
	for _, record := range response.Data.List[1:] {
		if record.LtEpsd > latest.LtEpsd {
			latest = record
		}
	}

	// 추첨일 포맷 변환 (YYYYMMDD → YYYY-MM-DD)
	date := latest.LtRflYmd
	if len(date) == 8 {
		date = fmt.Sprintf("%s-%s-%s", date[0:4], date[4:6], date[6:8])
	}

	return &RoundInfo{
		Round:   latest.LtEpsd,
		Date:    date,
		Numbers: [6]int{latest.Tm1WnNo, latest.Tm2WnNo, latest.Tm3WnNo, latest.Tm4WnNo, latest.Tm5WnNo, latest.Tm6WnNo},
		BonusNo: latest.BnsWnNo,
	}, nil
}

// extractBalance는 마이페이지 응답에서 예치금을 읽어옵니다.
// 필드가 없으면 0으로 취급합니다 (오류 아님).
func extractBalance(payload string) (int, error) {
	var response struct {
		Data struct {
			UserMndp struct {
				CrntEntrsAmt *int `json:"crntEntrsAmt"`
			} `json:"userMndp"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return 0, &ParseError{What: "마이페이지 응답", Err: err}
	}
	if response.Data.UserMndp.CrntEntrsAmt == nil {
		return 0, nil
	}
	return *response.Data.UserMndp.CrntEntrsAmt, nil
}

// extractHistoricalResults는 당첨 결과 테이블을 문서 순서대로 파싱합니다
func extractHistoricalResults(html string) ([]RoundResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{What: "당첨 결과 HTML", Err: err}
	}

	var results []RoundResult
	var rowErr error

	doc.Find("table tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 9 {
			// 헤더/구분 행은 건너뜁니다
			return true
		}

		round, err := cellInt(cells.Eq(0))
		if err != nil {
			rowErr = &ParseError{What: "당첨 결과 행", Err: err}
			return false
		}

		result := RoundResult{Round: round}
		for n := 0; n < 6; n++ {
			num, err := cellInt(cells.Eq(2 + n))
			if err != nil {
				rowErr = &ParseError{What: "당첨 결과 행", Err: err}
				return false
			}
			result.Numbers[n] = num
		}

		bonus, err := cellInt(cells.Eq(8))
		if err != nil {
			rowErr = &ParseError{What: "당첨 결과 행", Err: err}
			return false
		}
		result.BonusNo = bonus

		results = append(results, result)
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	return results, nil
}

// cellInt는 셀 텍스트에서 숫자를 읽습니다 ("1,101회" 같은 표기 허용)
func cellInt(cell *goquery.Selection) (int, error) {
	text := strings.TrimSpace(cell.Text())
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSuffix(text, "회")
	return strconv.Atoi(text)
}

// FetchLastRound는 최근 회차 당첨 정보를 받아옵니다. 로그인이 필요 없습니다.
func FetchLastRound(session *Session) (*RoundInfo, error) {
	return fetchLastRound(session, mainInfoURL)
}

func fetchLastRound(session *Session, rawURL string) (*RoundInfo, error) {
	resp, err := session.Get(rawURL)
	if err != nil {
		return nil, err
	}
	info, err := extractLastRound(resp.Text)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ 당첨번호 조회 완료: %d회 (%s)\n", info.Round, info.Date)
	log.Printf("   당첨번호: %v, 보너스: %d\n", info.Numbers, info.BonusNo)
	return info, nil
}

// LastRound는 최근 회차 당첨 정보를 받아옵니다
func (c *Client) LastRound() (*RoundInfo, error) {
	return fetchLastRound(c.session, c.eps.mainInfo)
}

// Balance는 현재 예치금을 조회합니다. 로그인 후에만 유효합니다.
func (c *Client) Balance() (int, error) {
	resp, err := c.session.Get(c.eps.myPage)
	if err != nil {
		return 0, err
	}
	return extractBalance(resp.Text)
}

// HistoricalResults는 회차 범위의 당첨 결과를 조회합니다.
// 범위가 잘못되었으면 네트워크 호출 없이 거부합니다.
func (c *Client) HistoricalResults(startRound, endRound int) ([]RoundResult, error) {
	if startRound > endRound || endRound-startRound > maxResultRange {
		return nil, &InvalidRangeError{Start: startRound, End: endRound}
	}

	url := fmt.Sprintf("%s&drwNoStart=%d&drwNoEnd=%d", c.eps.gameResult, startRound, endRound)
	resp, err := c.session.Get(url)
	if err != nil {
		return nil, err
	}
	return extractHistoricalResults(resp.Text)
}
