package service

// LoginRequest 登录请求，支持 JSON 与表单
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginReply struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AnalyzeRequest struct {
	Sector        string
	SaveReport    bool
	Authorization string
}

type AnalyzeReply struct {
	Sector          string `json:"sector"`
	Report          string `json:"report"`
	SourcesAnalyzed int    `json:"sources_analyzed"`
	SavedTo         string `json:"saved_to,omitempty"`
	Timestamp       string `json:"timestamp"`
}

type Endpoints struct {
	Login   string `json:"login"`
	Analyze string `json:"analyze"`
	Health  string `json:"health"`
}

type RootReply struct {
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Endpoints Endpoints `json:"endpoints"`
}

type HealthReply struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
