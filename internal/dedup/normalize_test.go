package dedup

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"[단독] 하나투어, 신규 서비스 출시!", "하나투어 신규 서비스 출시"},
		{"하나투어... '46기' 인턴 모집", "하나투어 46기 인턴 모집"},
		{"Samsung Card Event", "samsung card event"},
		{"(종합) 야놀자 실적 발표", "야놀자 실적 발표"},
		{"【속보】 카드 할인   이벤트", "카드 할인 이벤트"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	titles := []string{
		"[단독] 하나투어, 신규 서비스 출시!",
		"카드 할인 이벤트 진행",
		"Samsung & LG: 협력 발표",
	}
	for _, title := range titles {
		once := NormalizeTitle(title)
		if twice := NormalizeTitle(once); twice != once {
			t.Errorf("NormalizeTitle not idempotent on %q: %q then %q", title, once, twice)
		}
	}
}

func TestStripKeyword(t *testing.T) {
	title := NormalizeTitle("하나투어 신규 서비스 출시")
	got := StripKeyword(title, "하나투어")
	if got != "신규 서비스 출시" {
		t.Errorf("StripKeyword = %q", got)
	}

	// Keyword absent: title unchanged.
	if got := StripKeyword("신규 서비스 출시", "야놀자"); got != "신규 서비스 출시" {
		t.Errorf("StripKeyword without match = %q", got)
	}

	if got := StripKeyword(title, ""); got != title {
		t.Errorf("StripKeyword with empty keyword = %q", got)
	}
}

func TestJaccard(t *testing.T) {
	a := wordSet("하나투어 패키지 출시")
	b := wordSet("하나투어 패키지 공개")
	if got := jaccard(a, b); got != 0.5 {
		t.Errorf("jaccard = %v, want 0.5", got)
	}
	if got := jaccard(wordSet(""), wordSet("")); got != 1.0 {
		t.Errorf("jaccard of empty sets = %v, want 1.0", got)
	}
	if got := jaccard(a, a); got != 1.0 {
		t.Errorf("jaccard of identical sets = %v, want 1.0", got)
	}
}
