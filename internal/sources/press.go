package sources

import (
	"net/url"
	"strings"
)

// pressByHost maps news site hosts to publisher names for sources that
// return bare links.
var pressByHost = map[string]string{
	"yna.co.kr":      "연합뉴스",
	"yonhapnews":     "연합뉴스",
	"khan.co.kr":     "경향신문",
	"hani.co.kr":     "한겨레",
	"chosun.com":     "조선일보",
	"joongang.co.kr": "중앙일보",
	"joins.com":      "중앙일보",
	"donga.com":      "동아일보",
	"hankyung.com":   "한국경제",
	"mk.co.kr":       "매일경제",
	"sedaily.com":    "서울경제",
	"news.naver.com": "네이버뉴스",
}

// PressFromURL returns the publisher name for a link, or the bare host when
// the publisher is unknown.
func PressFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Host, "www.")
	for key, name := range pressByHost {
		if strings.Contains(host, key) {
			return name
		}
	}
	return host
}
