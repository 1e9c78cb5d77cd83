package lotto

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
)

const (
	buyPageURL     = "https://ol.dhlottery.co.kr/olotto/game/game645.do"
	readySocketURL = "https://ol.dhlottery.co.kr/olotto/game/egovUserReadySocket.json"
	execBuyURL     = "https://ol.dhlottery.co.kr/olotto/game/execBuy.do"

	gamePrice        = 1000
	maxGamesPerRound = 5

	// 업무 결과 코드의 성공값
	resultCodeSuccess = "100"
)

// 한 회차에 온라인으로 구매 가능한 게임 수는 1~5장입니다
var ErrInvalidGameCount = errors.New("게임 수는 1~5 사이여야 합니다")

// BuyOptions는 구매 사이클의 설정입니다
type BuyOptions struct {
	GameCount int
	GenType   GenType
	Generator *Generator // 수동 선택일 때 번호 공급원
	DryRun    bool       // true면 실제 구매 요청을 보내지 않습니다
}

// Buy는 로또 구매 사이클을 실행합니다. 로그인이 끝난 상태여야 합니다.
// 모든 단계는 순차 실행되며, 한 단계가 실패하면 나머지는 수행하지 않습니다.
// 자동 재시도는 하지 않습니다.
func (c *Client) Buy(opts BuyOptions) (*PurchaseResult, error) {
	// 1단계: 사전 검증. 실패 시 네트워크 요청 없이 거부합니다.
	if opts.GameCount < 1 || opts.GameCount > maxGamesPerRound {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGameCount, opts.GameCount)
	}

	// 2단계: 구매 페이지 워밍업 (세션 연속성 유지)
	log.Println("1단계: 구매 페이지 접속 중...")
	if _, err := c.session.Get(c.eps.buyPage); err != nil {
		return nil, err
	}

	// 3단계: 게임 선택 구성. 선택 방식은 전체 게임에 동일하게 적용합니다.
	selections, err := c.buildSelections(opts)
	if err != nil {
		return nil, err
	}

	// 4단계: 예치금과 구매 회차 확인 (구매 회차 = 최근 회차 + 1)
	log.Println("2단계: 예치금 확인 중...")
	balance, err := c.Balance()
	if err != nil {
		return nil, err
	}
	log.Printf("   → 예치금: %s원\n", FormatMoney(balance))

	log.Println("3단계: 구매 회차 확인 중...")
	last, err := c.LastRound()
	if err != nil {
		return nil, err
	}
	buyRound := last.Round + 1
	log.Printf("   → 구매 회차: %d회\n", buyRound)

	// 5단계: 구매 대기열 토큰 확인 (세션 쿠키와 무관한 호출)
	log.Println("4단계: 구매 대기열 확인 중...")
	readyToken, err := c.fetchReadyToken()
	if err != nil {
		return nil, err
	}

	amount := gamePrice * opts.GameCount

	if opts.DryRun {
		log.Println("🧪 테스트 모드: 실제 구매 요청은 보내지 않습니다")
		return &PurchaseResult{
			Round:         buyRound,
			AmountCharged: 0,
			Games:         dryRunGames(selections),
			ResultCode:    "DRYRUN",
			ResultMessage: "테스트 모드",
			Remaining:     balance,
			DryRun:        true,
		}, nil
	}

	// 6단계: 구매 요청 전송
	log.Println("5단계: 로또 구매 요청 중...")
	log.Printf("   💰 구매 금액: %s원\n", FormatMoney(amount))

	resp, err := c.execBuy(buyRound, readyToken, amount, selections)
	if err != nil {
		return nil, err
	}

	// 7단계: 응답 해석
	result, err := interpretBuyResponse(resp)
	if err != nil {
		return nil, err
	}

	// 8단계: 잔여 예치금 계산
	result.Round = buyRound
	result.Remaining = balance - result.AmountCharged
	result.LowBalance = result.Remaining < result.AmountCharged

	log.Println("✅ 구매가 성공적으로 완료되었습니다!")
	return result, nil
}

// buildSelections는 게임 수만큼 선택을 구성합니다.
// 수동일 때에만 게임 슬롯마다 독립적으로 번호를 뽑습니다.
func (c *Client) buildSelections(opts BuyOptions) ([]GameSelection, error) {
	selections := make([]GameSelection, opts.GameCount)
	for i := range selections {
		selections[i] = GameSelection{GenType: opts.GenType}
		if opts.GenType != GenManual {
			continue
		}
		if opts.Generator == nil {
			return nil, fmt.Errorf("수동 선택에는 번호 생성기가 필요합니다")
		}
		numbers, err := opts.Generator.Generate(i + 1)
		if err != nil {
			return nil, err
		}
		selections[i].Numbers = numbers
	}
	return selections, nil
}

// fetchReadyToken은 대기열 엔드포인트에서 구매 토큰을 받아옵니다
func (c *Client) fetchReadyToken() (string, error) {
	resp, err := c.session.PostBare(c.eps.readySocket)
	if err != nil {
		return "", err
	}

	var ready struct {
		ReadyIP   string `json:"ready_ip"`
		ReadyTime string `json:"ready_time"`
		ReadyCnt  string `json:"ready_cnt"`
		DirectYn  string `json:"direct_yn"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &ready); err != nil {
		return "", &ParseError{What: "대기열 응답", Err: err}
	}

	if cnt, err := strconv.Atoi(ready.ReadyCnt); err == nil && cnt > 0 {
		log.Printf("   ⚠️  대기 인원: %d명 (예상 대기시간 %s초)\n", cnt, ready.ReadyTime)
		return "", fmt.Errorf("현재 구매 대기 인원이 있습니다. 잠시 후 다시 시도해주세요")
	}

	log.Printf("   → 대기열 없음, 즉시 구매 가능 (IP: %s)\n", ready.ReadyIP)
	return ready.ReadyIP, nil
}

// execBuy는 실제 구매 요청을 전송합니다
func (c *Client) execBuy(round int, readyToken string, amount int, selections []GameSelection) (*Response, error) {
	type choiceParam struct {
		GenType          string  `json:"genType"`
		ArrGameChoiceNum *string `json:"arrGameChoiceNum"`
		Alpabet          string  `json:"alpabet"`
	}

	params := make([]choiceParam, len(selections))
	for i, sel := range selections {
		params[i] = choiceParam{
			GenType: sel.GenType.wireCode(c.autoGenCode),
			Alpabet: slotAlphabet[i],
		}
		if sel.GenType == GenManual {
			joined := joinNumbers(sel.Numbers, ",")
			params[i].ArrGameChoiceNum = &joined
		}
	}

	paramJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("구매 파라미터 생성 실패: %w", err)
	}

	form := url.Values{}
	form.Set("round", strconv.Itoa(round))
	form.Set("direct", readyToken)
	form.Set("nBuyAmount", strconv.Itoa(amount))
	form.Set("param", string(paramJSON))
	form.Set("gameCnt", strconv.Itoa(len(selections)))

	return c.session.PostForm(c.eps.execBuy, form)
}

// buyResponse는 구매 응답 본문입니다.
// 최상위 플래그들과 중첩된 result 객체가 각각 독립적인 실패 신호입니다.
type buyResponse struct {
	LoginYn          string `json:"loginYn"`
	IsAllowed        string `json:"isAllowed"`
	IsGameManaged    string `json:"isGameManaged"`
	CheckOltSaleTime *bool  `json:"checkOltSaleTime"`
	ErrorMsg         string `json:"errorMsg"`
	Result           struct {
		ResultCode       string      `json:"resultCode"`
		ResultMsg        string      `json:"resultMsg"`
		BuyRound         string      `json:"buyRound"`
		NBuyAmount       json.Number `json:"nBuyAmount"`
		BarCode1         string      `json:"barCode1"`
		BarCode2         string      `json:"barCode2"`
		BarCode3         string      `json:"barCode3"`
		BarCode4         string      `json:"barCode4"`
		BarCode5         string      `json:"barCode5"`
		BarCode6         string      `json:"barCode6"`
		ArrGameChoiceNum []string    `json:"arrGameChoiceNum"`
	} `json:"result"`
}

// interpretBuyResponse는 구매 응답의 플래그들을 우선순위대로 평가합니다.
// 먼저 걸리는 플래그가 결과를 결정하며, 그 이후의 플래그는 보지 않습니다.
func interpretBuyResponse(resp *Response) (*PurchaseResult, error) {
	var body buyResponse
	if err := json.Unmarshal([]byte(resp.Text), &body); err != nil {
		// 세션이 끊기면 JSON 대신 로그인 페이지 HTML이 내려옵니다
		if strings.Contains(resp.Text, "<html") || strings.Contains(resp.Text, "<!DOCTYPE") {
			return nil, &PurchaseRejected{Reason: RejectAuthExpired, Message: "HTML 응답 수신"}
		}
		return nil, &ParseError{What: "구매 응답", Err: err}
	}

	switch {
	case body.LoginYn == "N":
		return nil, &PurchaseRejected{Reason: RejectAuthExpired}
	case body.IsAllowed == "N":
		return nil, &PurchaseRejected{Reason: RejectBlocked}
	case body.IsGameManaged == "Y":
		return nil, &PurchaseRejected{Reason: RejectGameManaged, Message: body.ErrorMsg}
	case body.CheckOltSaleTime != nil && !*body.CheckOltSaleTime:
		return nil, &PurchaseRejected{Reason: RejectOutsideSaleWindow}
	}

	if body.Result.ResultCode != resultCodeSuccess {
		message := body.Result.ResultMsg
		if message == "" {
			message = "결과 메세지가 비어 있습니다"
		}
		return nil, &PurchaseRejected{Reason: RejectBusinessCode, Message: message}
	}

	amount, _ := body.Result.NBuyAmount.Int64()
	round, _ := strconv.Atoi(body.Result.BuyRound)

	result := &PurchaseResult{
		Round:         round,
		AmountCharged: int(amount),
		Barcodes: [6]string{
			body.Result.BarCode1, body.Result.BarCode2, body.Result.BarCode3,
			body.Result.BarCode4, body.Result.BarCode5, body.Result.BarCode6,
		},
		ResultCode:    body.Result.ResultCode,
		ResultMessage: body.Result.ResultMsg,
	}

	for _, entry := range body.Result.ArrGameChoiceNum {
		game, err := parseGameChoice(entry)
		if err != nil {
			return nil, err
		}
		result.Games = append(result.Games, *game)
	}

	return result, nil
}

// parseGameChoice는 "A|3|7|15|22|30|413" 형식의 게임 문자열을 파싱합니다.
// 마지막 숫자 뒤에 genType 한 글자가 덧붙어 있습니다.
func parseGameChoice(entry string) (*PurchasedGame, error) {
	if len(entry) < 2 {
		return nil, &ParseError{What: "구매 번호", Err: fmt.Errorf("잘못된 형식: %q", entry)}
	}

	genType := entry[len(entry)-1:]
	parts := strings.Split(entry[:len(entry)-1], "|")
	if len(parts) != 7 {
		return nil, &ParseError{What: "구매 번호", Err: fmt.Errorf("잘못된 형식: %q", entry)}
	}

	game := &PurchasedGame{
		Slot:        strings.TrimSpace(parts[0]),
		GenTypeCode: genType,
		Numbers:     make([]int, 0, 6),
	}
	for _, part := range parts[1:] {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &ParseError{What: "구매 번호", Err: err}
		}
		game.Numbers = append(game.Numbers, num)
	}
	return game, nil
}

func dryRunGames(selections []GameSelection) []PurchasedGame {
	games := make([]PurchasedGame, len(selections))
	for i, sel := range selections {
		games[i] = PurchasedGame{
			Slot:    slotAlphabet[i],
			Numbers: sel.Numbers,
		}
	}
	return games
}

func joinNumbers(numbers []int, sep string) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
