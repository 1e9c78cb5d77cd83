package lotto

// endpoints는 클라이언트가 사용하는 사이트 주소 모음입니다
type endpoints struct {
	mainPage      string
	rsaModulus    string
	loginSubmit   string
	pwChangeLater string
	buyPage       string
	readySocket   string
	execBuy       string
	mainInfo      string
	myPage        string
	gameResult    string
}

var defaultEndpoints = endpoints{
	mainPage:      mainPageURL,
	rsaModulus:    rsaModulusURL,
	loginSubmit:   loginSubmitURL,
	pwChangeLater: pwChangeLaterURL,
	buyPage:       buyPageURL,
	readySocket:   readySocketURL,
	execBuy:       execBuyURL,
	mainInfo:      mainInfoURL,
	myPage:        myPageURL,
	gameResult:    gameResultURL,
}

// Client는 동행복권 클라이언트입니다.
// 세션은 클라이언트가 단독으로 소유하며, 한 번에 하나의 구매 사이클만
// 실행한다는 전제 하에 동작합니다 (사이클 간 동시 실행 금지).
type Client struct {
	session  *Session
	eps      endpoints
	userID   string
	password string

	// 포털 버전에 따라 달라지는 자동 genType 코드 ("0" 또는 "3")
	autoGenCode string
}

// Option은 클라이언트 생성 옵션입니다
type Option func(*Client)

// WithAutoGenCode는 자동 선택 genType 코드를 지정합니다
func WithAutoGenCode(code string) Option {
	return func(c *Client) { c.autoGenCode = code }
}

// NewClient는 새로운 동행복권 클라이언트를 생성합니다
func NewClient(userID, password string, opts ...Option) (*Client, error) {
	session, err := NewSession()
	if err != nil {
		return nil, err
	}

	c := &Client{
		session:  session,
		eps:      defaultEndpoints,
		userID:   userID,
		password: password,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UserID는 계정 아이디를 반환합니다
func (c *Client) UserID() string {
	return c.userID
}
