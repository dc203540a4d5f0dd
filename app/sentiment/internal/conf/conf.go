package conf

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Analysis *Analysis `json:"analysis"`
	Report   *Report   `json:"report"`
	Log      *Log      `json:"log"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database driver is "postgres" or "sqlite". An empty source disables history.
type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Redis caches analysis results. An empty addr disables the cache.
type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int32  `json:"db"`
	Ttl      string `json:"ttl"`
}

type Analysis struct {
	// Mode is "production", "development" or "testing". Outside production
	// failures fall back to mock data.
	Mode        string       `json:"mode"`
	MaxArticles int32        `json:"max_articles"`
	News        *News        `json:"news"`
	Search      *Search      `json:"search"`
	Llm         *LLM         `json:"llm"`
	Concurrency *Concurrency `json:"concurrency"`
	FullText    *FullText    `json:"full_text"`
}

type News struct {
	NewsapiKey    string `json:"newsapi_key"`
	NewsapiUrl    string `json:"newsapi_url"`
	GoogleNewsUrl string `json:"google_news_url"`
	Timeout       string `json:"timeout"`
}

type Search struct {
	Provider     string   `json:"provider"`
	LookbackDays int32    `json:"lookback_days"`
	Tavily       *Tavily  `json:"tavily"`
	Searxng      *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type LLM struct {
	Provider    string  `json:"provider"`
	BaseUrl     string  `json:"base_url"`
	ApiKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}

type Concurrency struct {
	Qps     int32 `json:"qps"`
	Rpm     int32 `json:"rpm"`
	Workers int32 `json:"workers"`
}

type FullText struct {
	Enabled bool   `json:"enabled"`
	Workers int32  `json:"workers"`
	Timeout string `json:"timeout"`
}

type Report struct {
	Enabled   bool   `json:"enabled"`
	ChromeUrl string `json:"chrome_url"`
	Timeout   string `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
