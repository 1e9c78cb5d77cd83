package lotto

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	mainPageURL     = "https://www.dhlottery.co.kr/common.do?method=main"
	systemCheckPath = "index_check.html"

	loginSubmitURL     = "https://www.dhlottery.co.kr/login/securityLoginCheck.do"
	pwChangeLaterURL   = "https://www.dhlottery.co.kr/login/changePwdNextTime.do"
	loginSuccessMarker = "common.do?method=main"
)

// Login은 동행복권 사이트에 로그인합니다.
// 세션 워밍업 → RSA 공개키 수신 → 암호화 자격증명 제출 순서로 진행하며,
// 실패하면 이후 단계 없이 즉시 종료합니다. 사이클마다 새로 호출합니다.
func (c *Client) Login() error {
	// 1단계: 세션 워밍업 (쿠키 획득 목적, 본문은 사용하지 않음)
	log.Println("1단계: 세션 생성 중...")
	warm, err := c.session.Get(c.eps.mainPage)
	if err != nil {
		return err
	}
	if strings.Contains(warm.FinalURL, systemCheckPath) {
		return ErrMaintenance
	}

	// 2단계: RSA 공개키 수신
	log.Println("2단계: RSA 공개키 가져오는 중...")
	key, err := fetchKeyMaterial(c.session, c.eps.rsaModulus)
	if err != nil {
		return err
	}

	// 3단계: 아이디/비밀번호 암호화
	log.Println("3단계: 아이디/비밀번호 암호화 중...")
	encryptedID, err := encryptCredential(key, c.userID)
	if err != nil {
		return err
	}
	encryptedPw, err := encryptCredential(key, c.password)
	if err != nil {
		return err
	}

	// 4단계: 로그인 요청 전송.
	// 평문 아이디와 암호화된 아이디를 모두 보낸다. 서버가 어느 쪽을
	// 실제로 검사하는지 확인되지 않았으므로 둘 다 유지한다.
	log.Println("4단계: 로그인 요청 전송 중...")
	form := url.Values{}
	form.Set("returnUrl", c.eps.mainPage)
	form.Set("userId", c.userID)
	form.Set("userIdEncn", encryptedID)
	form.Set("userPswdEncn", encryptedPw)
	form.Set("checkSave", "on")
	form.Set("newsEventYn", "")

	resp, err := c.session.PostFormNoRedirect(c.eps.loginSubmit, form)
	if err != nil {
		return err
	}

	outcome := c.evaluateLogin(resp)
	if outcome == nil {
		log.Println("✅ 로그인 완료! 세션이 정상적으로 생성되었습니다")
	}
	return outcome
}

// evaluateLogin은 로그인 제출 응답을 성공/실패로 판정합니다
func (c *Client) evaluateLogin(resp *Response) error {
	switch {
	case resp.IsRedirect():
		// 성공 시 메인 페이지로 리다이렉트됩니다. 그 외의 목적지는 실패.
		loc := resp.Location()
		if strings.Contains(loc, loginSuccessMarker) {
			return nil
		}
		return &AuthError{Reason: "예기치 않은 리다이렉트: " + loc}

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return c.evaluateLoginHTML(resp.Text)

	default:
		return &AuthError{Reason: fmt.Sprintf("예기치 않은 응답 상태: %d", resp.StatusCode)}
	}
}

// evaluateLoginHTML은 2xx HTML 본문으로 로그인 결과를 판정합니다
func (c *Client) evaluateLoginHTML(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &ParseError{What: "로그인 응답 HTML", Err: err}
	}

	// 비밀번호 변경 안내 페이지면 "다음에 변경" 폼을 그대로 재전송하고
	// 로그인 자체는 성공으로 처리합니다.
	pwForm := doc.Find(`form[action*="changePwd"]`)
	if pwForm.Length() > 0 {
		log.Println("   → 비밀번호 변경 안내 페이지 감지, 변경 건너뛰기 요청 중...")
		c.skipPasswordChange(pwForm)
		return nil
	}

	// 로그인 버튼이 남아 있지 않으면 로그인된 페이지입니다
	if doc.Find("a.btn_common.lrg.blu").Length() == 0 {
		return nil
	}

	return &AuthError{Reason: "아이디 또는 비밀번호를 확인해주세요"}
}

// skipPasswordChange는 변경 안내 폼의 hidden 필드를 그대로 재전송합니다.
// 이 요청의 응답은 로그인 결과에 영향을 주지 않습니다.
func (c *Client) skipPasswordChange(form *goquery.Selection) {
	fields := url.Values{}
	form.Find(`input[type="hidden"]`).Each(func(i int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := s.Attr("value")
		fields.Set(name, value)
	})

	if _, err := c.session.PostForm(c.eps.pwChangeLater, fields); err != nil {
		log.Printf("⚠️  비밀번호 변경 건너뛰기 요청 실패 (무시): %v\n", err)
	}
}
