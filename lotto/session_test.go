package lotto

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func eucKR(t *testing.T, text string) []byte {
	t.Helper()
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(text))
	require.NoError(t, err)
	return encoded
}

func TestGetDecodesDeclaredCharset(t *testing.T) {
	const page = "<html><body>동행복권 로또 6/45</body></html>"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write(eucKR(t, page))
	}))
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, page, resp.Text)
}

func TestGetDefaultsToEUCKR(t *testing.T) {
	const page = "로그인이 필요합니다"

	// charset 선언이 없는 응답은 EUC-KR로 간주합니다
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write(eucKR(t, page))
	}))
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, page, resp.Text)
}

func TestGetKeepsUTF8WhenDeclared(t *testing.T) {
	const body = `{"message":"안녕하세요"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, body, resp.Text)

	// JSON 응답은 구조화 파싱도 함께 시도합니다
	require.NotNil(t, resp.JSON)
	require.Equal(t, "안녕하세요", resp.JSON["message"])
}

func TestGetJSONParseFailureKeepsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte("not-json"))
	}))
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.Get(server.URL)
	require.NoError(t, err)
	require.Nil(t, resp.JSON)
	require.Equal(t, "not-json", resp.Text)
}

func TestPostFormNoRedirectStopsAtRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/next", http.StatusFound)
	})
	mux.HandleFunc("/next", func(w http.ResponseWriter, r *http.Request) {
		t.Error("리다이렉트를 따라가면 안 됩니다")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.PostFormNoRedirect(server.URL+"/submit", url.Values{"a": {"1"}})
	require.NoError(t, err)
	require.True(t, resp.IsRedirect())
	require.Contains(t, resp.Location(), "/next")
}

func TestSessionSharesCookiesAcrossClients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123", Path: "/"})
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		if err != nil || cookie.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("ok"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	_, err = session.Get(server.URL + "/set")
	require.NoError(t, err)

	// 리다이렉트 차단 클라이언트도 같은 쿠키 저장소를 씁니다
	resp, err := session.PostFormNoRedirect(server.URL+"/check", url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFinalURLAfterRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/index_check.html", http.StatusFound)
	})
	mux.HandleFunc("/index_check.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("checking"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	session, err := NewSession()
	require.NoError(t, err)

	resp, err := session.Get(server.URL + "/start")
	require.NoError(t, err)
	require.Contains(t, resp.FinalURL, "index_check.html")
}
