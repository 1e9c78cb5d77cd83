package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Bot은 텔레그램 알림 전송기입니다
type Bot struct {
	Token  string
	ChatID string

	httpClient *http.Client
}

// New는 텔레그램 봇을 생성합니다
func New(token, chatID string) *Bot {
	return &Bot{
		Token:      token,
		ChatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage는 텔레그램 메시지를 전송합니다
func (b *Bot) SendMessage(message string) error {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", b.Token)

	payload := map[string]interface{}{
		"chat_id":    b.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("JSON 마샬링 실패: %w", err)
	}

	resp, err := b.httpClient.Post(apiURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("텔레그램 API 호출 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("텔레그램 메시지 전송 실패 (상태: %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// Notify는 제목과 본문을 한 건의 알림으로 전송합니다.
// 알림 실패는 로그만 남기고 호출자에게 전파하지 않습니다.
func (b *Bot) Notify(title, body string) bool {
	message := fmt.Sprintf("[%s]\n%s", title, body)
	if err := b.SendMessage(message); err != nil {
		log.Printf("⚠️  텔레그램 메시지 전송 실패: %v\n", err)
		return false
	}
	log.Println("✅ 텔레그램 메시지 전송 완료")
	return true
}
