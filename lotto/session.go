package lotto

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// 요청당 타임아웃. 초과 시 해당 사이클 전체를 중단합니다.
const requestTimeout = 10 * time.Second

// baselineHeaders는 모든 요청에 붙는 브라우저 기본 헤더입니다
var baselineHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
	"Referer":         "https://dhlottery.co.kr/",
	"Origin":          "https://dhlottery.co.kr",
}

// Session은 동행복권 사이트와의 브라우저급 세션입니다.
// 쿠키 저장소를 공유하는 클라이언트 한 쌍을 소유하며, 프로세스 수명 동안
// 한 번 생성해 모든 요청에서 그대로 사용합니다. 동시 사용은 지원하지 않습니다.
type Session struct {
	web    *resty.Client // 리다이렉트를 따라가는 일반 요청용
	submit *resty.Client // 리다이렉트를 차단하는 로그인 제출용 (쿠키 공유)
	bare   *resty.Client // 쿠키 저장소에 묶이지 않는 요청용
}

// Response는 문자셋 디코딩을 마친 응답입니다
type Response struct {
	StatusCode int
	Header     http.Header
	FinalURL   string         // 리다이렉트를 모두 따라간 뒤의 최종 URL
	Text       string         // 디코딩된 본문
	JSON       map[string]any // JSON 응답일 때의 구조화 값 (파싱 실패 시 nil)
}

// Location은 리다이렉트 응답의 Location 헤더를 반환합니다
func (r *Response) Location() string {
	return r.Header.Get("Location")
}

// IsRedirect는 3xx 응답인지 여부입니다
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// NewSession은 새로운 세션을 생성합니다
func NewSession() (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("쿠키 저장소 생성 실패: %w", err)
	}

	web := resty.NewWithClient(&http.Client{
		Jar:     jar,
		Timeout: requestTimeout,
	})
	web.SetHeaders(baselineHeaders)

	// 로그인 제출은 Location 헤더를 직접 검사해야 하므로 리다이렉트를 차단합니다
	submit := resty.NewWithClient(&http.Client{
		Jar:     jar,
		Timeout: requestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
	submit.SetHeaders(baselineHeaders)

	bare := resty.NewWithClient(&http.Client{
		Timeout: requestTimeout,
	})
	bare.SetHeaders(baselineHeaders)

	return &Session{web: web, submit: submit, bare: bare}, nil
}

// Get은 세션 쿠키를 실어 GET 요청을 보냅니다.
// 쓰기 요청이 아니므로 Content-Type 헤더는 붙이지 않습니다.
func (s *Session) Get(rawURL string) (*Response, error) {
	resp, err := s.web.R().Get(rawURL)
	return decode(rawURL, resp, err)
}

// PostForm은 폼 데이터를 POST로 전송합니다
func (s *Session) PostForm(rawURL string, form url.Values) (*Response, error) {
	resp, err := s.web.R().
		SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8").
		SetBody(form.Encode()).
		Post(rawURL)
	return decode(rawURL, resp, err)
}

// PostFormNoRedirect는 리다이렉트를 따라가지 않고 폼을 전송합니다
func (s *Session) PostFormNoRedirect(rawURL string, form url.Values) (*Response, error) {
	resp, err := s.submit.R().
		SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8").
		SetBody(form.Encode()).
		Post(rawURL)
	return decode(rawURL, resp, err)
}

// PostBare는 세션 쿠키 없이 POST 요청을 보냅니다 (구매 대기열 확인용)
func (s *Session) PostBare(rawURL string) (*Response, error) {
	resp, err := s.bare.R().
		SetHeader("Content-Type", "application/json; charset=UTF-8").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		Post(rawURL)
	return decode(rawURL, resp, err)
}

// decode는 응답 본문을 선언된 문자셋으로 디코딩합니다.
// 오류 응답이라도 서버가 내려준 진단 텍스트를 읽을 수 있도록
// 본문이 있으면 동일하게 디코딩해 TransportError에 담습니다.
func decode(rawURL string, resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		te := &TransportError{URL: rawURL, Err: err}
		if resp != nil && len(resp.Body()) > 0 {
			te.Body = decodeCharset(resp.Body(), resp.Header().Get("Content-Type"))
		}
		return nil, te
	}

	text := decodeCharset(resp.Body(), resp.Header().Get("Content-Type"))

	decoded := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Text:       text,
	}
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		decoded.FinalURL = raw.Request.URL.String()
	}

	// JSON 응답이면 구조화 파싱을 시도합니다. 실패해도 텍스트는 그대로 유지합니다.
	if strings.Contains(resp.Header().Get("Content-Type"), "json") {
		var parsed map[string]any
		if json.Unmarshal([]byte(text), &parsed) == nil {
			decoded.JSON = parsed
		}
	}

	return decoded, nil
}

// decodeCharset은 Content-Type의 charset 파라미터에 따라 본문을 디코딩합니다.
// 사이트가 엔드포인트마다 인코딩을 섞어 쓰기 때문에 EUC-KR을 기본값으로 둡니다.
func decodeCharset(raw []byte, contentType string) string {
	enc := charsetOf(contentType)
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func charsetOf(contentType string) encoding.Encoding {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if name := params["charset"]; name != "" {
			if enc, err := htmlindex.Get(name); err == nil && enc != nil {
				return enc
			}
		}
	}
	return korean.EUCKR
}
