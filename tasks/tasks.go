package tasks

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"dhlotto/config"
	"dhlotto/lotto"
	"dhlotto/store"
)

// Notifier는 알림 전송기입니다. 전송 실패는 호출자에게 전파되지 않습니다.
type Notifier interface {
	Notify(title, body string) bool
}

const (
	storeNS = "lotto"

	keyLastRound    = "lastRound"
	keyLastBuyRound = "lastBuyRound"

	winQrURL = "https://m.dhlottery.co.kr/qr.do?method=winQr"

	// 예치금 부족 경고 기준 금액
	lowBalanceThreshold = 10000
)

func buyRoundKey(round int, userID string) string {
	return fmt.Sprintf("buyRounds.%d.%s", round, userID)
}

// notify는 등록된 알림 전송기가 있을 때에만 알림을 보냅니다
func notify(bot Notifier, title, body string) {
	if bot == nil {
		log.Println("⚠️  등록된 알림 서비스가 없습니다. 알림을 건너뜁니다.")
		return
	}
	bot.Notify(title, body)
}

// BuyLotto는 모든 계정에 대해 로또 구매 사이클을 실행합니다.
// 계정 하나의 실패는 다음 계정으로 전파되지 않습니다.
func BuyLotto(cfg config.Config, st *store.Store, bot Notifier, dryRun bool) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("          🎱 로또 구매 작업")
	log.Printf("          (총 %d개 계정)\n", len(cfg.Accounts))
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for i, account := range cfg.Accounts {
		log.Println()
		log.Printf("=== 계정 %d/%d: %s ===\n", i+1, len(cfg.Accounts), account.UserID)
		buyForAccount(cfg, account, st, bot, dryRun)
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println()
}

// buyForAccount는 계정 하나의 구매 사이클을 처음부터 끝까지 실행합니다.
// 어떤 결과든 (성공/실패) 사람이 읽을 수 있는 알림으로 변환합니다.
func buyForAccount(cfg config.Config, account config.Account, st *store.Store, bot Notifier, dryRun bool) {
	genType, err := lotto.ParseGenType(cfg.GenType)
	if err != nil {
		log.Printf("❌ %v\n", err)
		notify(bot, "구매 오류", err.Error())
		return
	}

	client, err := lotto.NewClient(account.UserID, account.Password, lotto.WithAutoGenCode(cfg.AutoGenCode))
	if err != nil {
		log.Printf("❌ 클라이언트 생성 실패: %v\n", err)
		notify(bot, "구매 오류", fmt.Sprintf("(%s) 클라이언트 생성 오류: %v", account.UserID, err))
		return
	}

	log.Println("=== 로그인 시작 ===")
	if err := client.Login(); err != nil {
		log.Printf("❌ 로그인 실패: %v\n", err)
		notify(bot, "로그인 실패", fmt.Sprintf("(%s) %v", account.UserID, err))
		return
	}

	log.Println()
	log.Printf("=== 로또 구매 (%d게임, %s) ===\n", cfg.GameCount, genType)
	result, err := client.Buy(lotto.BuyOptions{
		GameCount: cfg.GameCount,
		GenType:   genType,
		Generator: lotto.NewGeneratorFromEnv(),
		DryRun:    dryRun,
	})
	if err != nil {
		log.Printf("❌ 구매 실패: %v\n", err)
		notify(bot, "구매 실패", formatBuyError(account.UserID, err))
		return
	}

	if result.DryRun {
		log.Println("🧪 테스트 모드 구매 결과:")
		for _, game := range result.Games {
			log.Printf("   [%s] %v\n", game.Slot, game.Numbers)
		}
		notify(bot, "테스트 구매 완료", formatBuyMessage(account.UserID, result))
		return
	}

	// 구매 이력 저장 (당첨 확인 사이클에서 교차 확인)
	if st != nil {
		if err := st.SetJSON(storeNS, buyRoundKey(result.Round, account.UserID), result.PerGameNumbers()); err != nil {
			log.Printf("⚠️  구매 이력 저장 실패: %v\n", err)
		}
		if err := st.SetJSON(storeNS, keyLastBuyRound, result.Round); err != nil {
			log.Printf("⚠️  구매 회차 저장 실패: %v\n", err)
		}
	}

	if result.LowBalance {
		log.Printf("⚠️  잔여 예치금 부족: %s원\n", lotto.FormatMoney(result.Remaining))
	}

	notify(bot, "구매 성공", formatBuyMessage(account.UserID, result))
}

// CheckBalance는 모든 계정의 예치금을 확인하고 부족하면 알립니다
func CheckBalance(cfg config.Config, bot Notifier) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("          💰 예치금 확인 작업")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for _, account := range cfg.Accounts {
		client, err := lotto.NewClient(account.UserID, account.Password)
		if err != nil {
			log.Printf("❌ 클라이언트 생성 실패: %v\n", err)
			continue
		}

		if err := client.Login(); err != nil {
			log.Printf("❌ 로그인 실패: %v\n", err)
			notify(bot, "로그인 실패", fmt.Sprintf("(%s) %v", account.UserID, err))
			continue
		}

		balance, err := client.Balance()
		if err != nil {
			log.Printf("❌ 예치금 확인 실패: %v\n", err)
			notify(bot, "예치금 확인 실패", fmt.Sprintf("(%s) %v", account.UserID, err))
			continue
		}

		if balance < lowBalanceThreshold {
			log.Printf("⚠️  예치금 부족: %s원\n", lotto.FormatMoney(balance))
			notify(bot, "예치금 부족 알림", fmt.Sprintf(
				"(%s) 현재 예치금: <b>%s원</b>\n기준 금액: %s원\n\n💡 예치금을 충전해주세요!",
				account.UserID, lotto.FormatMoney(balance), lotto.FormatMoney(lowBalanceThreshold),
			))
		} else {
			log.Printf("✅ 예치금 충분: %s원\n", lotto.FormatMoney(balance))
		}
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println()
}

// CheckWinners는 최근 회차 당첨번호를 알리고 구매 이력과 대조합니다.
// 로그인이 필요 없는 사이클입니다.
func CheckWinners(cfg config.Config, st *store.Store, bot Notifier) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("          🎰 당첨번호 확인 작업")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	session, err := lotto.NewSession()
	if err != nil {
		log.Printf("❌ 세션 생성 실패: %v\n", err)
		return
	}

	latest, err := lotto.FetchLastRound(session)
	if err != nil {
		log.Printf("❌ 당첨번호 조회 실패: %v\n", err)
		notify(bot, "당첨번호 조회실패", err.Error())
		return
	}

	// 이미 알림을 보낸 회차면 건너뜁니다
	if st != nil {
		var stored lotto.RoundInfo
		if ok, _ := st.GetJSON(storeNS, keyLastRound, &stored); ok && stored.Round >= latest.Round {
			log.Printf("   → %d회 당첨번호는 이미 알림을 보냈습니다\n", latest.Round)
			return
		}
	}

	numbers := make([]string, len(latest.Numbers))
	for i, n := range latest.Numbers {
		numbers[i] = fmt.Sprintf("%d", n)
	}
	notify(bot, fmt.Sprintf("제 %d회 당첨번호 🎉", latest.Round),
		strings.Join(numbers, " ")+" + "+fmt.Sprintf("%d", latest.BonusNo))

	if st == nil {
		return
	}

	if err := st.SetJSON(storeNS, keyLastRound, latest); err != nil {
		log.Printf("⚠️  회차 정보 저장 실패: %v\n", err)
	}

	// 구매 이력이 있으면 등수 판정과 당첨 확인 링크를 보냅니다
	for _, account := range cfg.Accounts {
		var games [][]int
		ok, err := st.GetJSON(storeNS, buyRoundKey(latest.Round, account.UserID), &games)
		if err != nil || !ok || len(games) == 0 {
			continue
		}

		notify(bot, fmt.Sprintf("제 %d회 당첨 결과", latest.Round),
			formatWinningMessage(account.UserID, latest, games))
		notify(bot, fmt.Sprintf("제 %d회 당첨 확인 링크", latest.Round),
			winQrLink(latest.Round, games))
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println()
}

// formatBuyMessage는 구매 성공 결과를 알림 메시지로 포맷합니다
func formatBuyMessage(userID string, result *lotto.PurchaseResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "(%s) ✅ <b>로또 구매 성공!</b>\n\n", userID)
	fmt.Fprintf(&b, "🎟 구매 회차: <b>제 %d회</b>\n", result.Round)
	fmt.Fprintf(&b, "💰 구매 금액: <b>%s원</b>\n", lotto.FormatMoney(result.AmountCharged))
	fmt.Fprintf(&b, "🎱 구매 게임: <b>%d게임</b>\n\n", len(result.Games))

	for _, game := range result.Games {
		fmt.Fprintf(&b, "[%s] ", game.Slot)
		for i, num := range game.Numbers {
			if i > 0 {
				b.WriteString(" - ")
			}
			fmt.Fprintf(&b, "%02d", num)
		}
		b.WriteString("\n")
	}

	if !result.DryRun {
		fmt.Fprintf(&b, "\n잔여 예치금: %s원", lotto.FormatMoney(result.Remaining))
		if result.LowBalance {
			b.WriteString("\n⚠️ 예치금이 부족합니다. 충전 후 다음 구매가 가능합니다.")
		}
	}

	return b.String()
}

// formatBuyError는 구매 실패를 사유별 안내 문구로 변환합니다
func formatBuyError(userID string, err error) string {
	var rejected *lotto.PurchaseRejected
	if errors.As(err, &rejected) {
		return fmt.Sprintf("(%s) ❌ %v", userID, rejected)
	}
	if errors.Is(err, lotto.ErrMaintenance) {
		return fmt.Sprintf("(%s) ❌ %v", userID, err)
	}
	return fmt.Sprintf("(%s) ❌ 구매에 실패했습니다.\n%v", userID, err)
}

// formatWinningMessage는 구매 번호와 당첨번호의 대조 결과를 포맷합니다
func formatWinningMessage(userID string, draw *lotto.RoundInfo, games [][]int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "(%s) 🎰 <b>로또 %d회 당첨 결과</b>\n\n", userID, draw.Round)
	fmt.Fprintf(&b, "🗓 추첨일: %s\n", draw.Date)
	b.WriteString("🎱 당첨번호: ")
	for i, num := range draw.Numbers {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "<b>%02d</b>", num)
	}
	fmt.Fprintf(&b, "\n➕ 보너스: <b>%02d</b>\n\n", draw.BonusNo)

	winningGames := 0
	for i, numbers := range games {
		rank, matchCount, hasBonus := lotto.CheckWinning(numbers, draw)

		fmt.Fprintf(&b, "🎲 [%s 게임] ", slotLabel(i))
		for j, num := range numbers {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%02d", num)
		}
		b.WriteString("\n")

		if rank > 0 {
			fmt.Fprintf(&b, "   🎉 <b>%s 당첨!</b> (%d개 일치", rank, matchCount)
			if hasBonus && rank == 2 {
				b.WriteString(" + 보너스")
			}
			b.WriteString(")\n")
			winningGames++
		} else {
			fmt.Fprintf(&b, "   ❌ 낙첨 (%d개 일치)\n", matchCount)
		}
	}

	if winningGames > 0 {
		fmt.Fprintf(&b, "\n🎊 <b>총 %d게임 당첨!</b>", winningGames)
	} else {
		b.WriteString("\n아쉽지만 다음 기회에! 😊")
	}

	return b.String()
}

func slotLabel(index int) string {
	slots := "ABCDE"
	if index < len(slots) {
		return string(slots[index])
	}
	return fmt.Sprintf("%d", index+1)
}

// winQrLink는 구매 번호로 당첨 확인 QR 페이지 링크를 만듭니다
func winQrLink(round int, games [][]int) string {
	parts := make([]string, len(games))
	for i, numbers := range games {
		var b strings.Builder
		for _, num := range numbers {
			fmt.Fprintf(&b, "%02d", num)
		}
		parts[i] = b.String()
	}
	return fmt.Sprintf("%s&v=%dq%s", winQrURL, round, strings.Join(parts, "q"))
}
