package dedup

import (
	"strings"
	"testing"
)

func TestDefaultPolicyJaccard(t *testing.T) {
	m := NewMatcher()

	if !m.Similar("하나투어 여행 패키지 출시 인기", "여행 패키지 출시 인기 끌어", "키워드없음") {
		t.Error("high-overlap titles not matched under default policy")
	}
	if m.Similar("여행 패키지 출시", "반도체 수출 증가세 지속 전망", "키워드없음") {
		t.Error("unrelated titles matched under default policy")
	}
}

func TestDefaultPolicySynonymPair(t *testing.T) {
	m := NewMatcher()

	// 진행/실시 split across otherwise-equal titles.
	if !m.Similar("신규 교육 프로그램 진행", "신규 교육 프로그램 실시", "키워드없음") {
		t.Error("synonym-pair rewrite not matched")
	}
	// Same pair but the remainders disagree.
	if m.Similar("신규 교육 진행", "대규모 구조조정 실시 발표 예정", "키워드없음") {
		t.Error("synonym pair with divergent remainders matched")
	}
}

func TestDefaultPolicySharedNumber(t *testing.T) {
	m := NewMatcher()

	if !m.Similar("3분기 영업이익 500억 달성", "영업이익 500억 달성 기록", "키워드없음") {
		t.Error("shared numeric token with agreeing remainder not matched")
	}
}

func TestBrandPolicyCohortNumbers(t *testing.T) {
	m := NewMatcher()

	// Same cohort number but an extra verb: the non-numeric remainder
	// falls short of the near-identity bar, so still distinct.
	if m.Similar("하나투어 46기 인턴 모집", "하나투어 46기 인턴 모집 시작", "하나투어") {
		t.Error("same number with diverging remainder matched under brand policy")
	}
	if !m.Similar("하나투어 46기 인턴 모집", "[단독] 하나투어 46기 인턴 모집", "하나투어") {
		t.Error("identical brand cohort titles not matched")
	}

	// Different cohort numbers are definitively distinct, whatever the
	// rest of the title says.
	if m.Similar("하나투어 46기 인턴 모집", "하나투어 47기 인턴 모집", "하나투어") {
		t.Error("different cohort numbers matched under brand policy")
	}
}

func TestBrandPolicyNumericRemainderBar(t *testing.T) {
	m := NewMatcher()

	words := make([]string, 19)
	for i := range words {
		words[i] = string(rune('가' + i))
	}

	// 19 of 20 non-numeric words shared: exactly 0.95, accepted.
	long := "하나투어 46기 " + strings.Join(words, " ")
	if !m.Similar(long, long+" 나들이", "하나투어") {
		t.Error("same cohort number with 19/20 shared remainder words not matched")
	}

	// 10 of 11 shared falls under the bar.
	short := "하나투어 46기 " + strings.Join(words[:10], " ")
	if m.Similar(short, short+" 나들이", "하나투어") {
		t.Error("same cohort number with 10/11 shared remainder words matched")
	}
}

func TestBrandPolicyActionVerbs(t *testing.T) {
	m := NewMatcher()

	if m.Similar("하나투어 신입 연수 시작", "하나투어 신입 연수 운영", "하나투어") {
		t.Error("differing action verbs matched under brand policy")
	}
}

func TestBrandPolicyProgramTerms(t *testing.T) {
	m := NewMatcher()

	// Program coverage on one side only: different stories.
	if m.Similar("하나투어 여행 교육 프로그램 소개", "하나투어 여행 상품 소개", "하나투어") {
		t.Error("program-term asymmetry matched under brand policy")
	}
}

func TestBrandPolicyThreshold(t *testing.T) {
	m := NewMatcher()

	// Moderate overlap that passes the default 0.4 bar must fail the
	// brand 0.7 bar.
	a := "하나투어 일본 패키지 예약 급증 추세"
	b := "하나투어 일본 패키지 예약 가격 인하"
	if m.Similar(a, b, "하나투어") {
		t.Error("moderate overlap matched under the strict brand threshold")
	}
	if !m.Similar(a, b, "일본여행") {
		t.Error("the same pair should match under the default threshold")
	}
}

func TestPromoPolicyProductTerm(t *testing.T) {
	m := NewMatcher()

	// One shared product term is enough, even with low word overlap.
	if !m.Similar("신한 카드 여름 할인 이벤트", "국민 카드 포인트 추가 적립 혜택 안내", "할인") {
		t.Error("shared product term not matched under promo policy")
	}
}

func TestPromoPolicySharedCard(t *testing.T) {
	m := NewMatcher()

	// Low generic overlap, but both headlines are about 카드 offers.
	if !m.Similar("카드 할인 이벤트", "카드 캐시백 프로모션", "할인") {
		t.Error("카드 headlines not collapsed under promo policy")
	}
}

func TestPromoPolicyProviderTerms(t *testing.T) {
	m := NewMatcher()

	if !m.Similar("카카오 페이 할인 시작", "카카오 추석 이벤트 안내", "할인") {
		t.Error("shared provider term not matched under promo policy")
	}
	if !m.Similar("SKT 요금 할인 발표", "SKT 멤버십 프로모션", "할인") {
		t.Error("latin provider term not matched after lowercasing")
	}
	if m.Similar("네이버 쇼핑 할인 기획전", "쿠팡 로켓 배송 확대 소식", "할인") {
		t.Error("different providers with no shared term matched")
	}
}

func TestPromoPolicyKeywordRouting(t *testing.T) {
	m := NewMatcher()

	if _, ok := m.PolicyFor("캐시백").(PromoPolicy); !ok {
		t.Error("캐시백 keyword not routed to promo policy")
	}
	if _, ok := m.PolicyFor("캐쉬백 이벤트").(PromoPolicy); !ok {
		t.Error("캐쉬백 keyword not routed to promo policy")
	}
	if _, ok := m.PolicyFor("하나투어").(BrandPolicy); !ok {
		t.Error("하나투어 not routed to brand policy")
	}
	if _, ok := m.PolicyFor("야놀자").(DefaultPolicy); !ok {
		t.Error("plain keyword not routed to default policy")
	}
}

func TestSetPolicy(t *testing.T) {
	m := NewMatcher()
	m.SetPolicy("모두투어", BrandPolicy{Threshold: BrandThreshold})
	if _, ok := m.PolicyFor("모두투어").(BrandPolicy); !ok {
		t.Error("SetPolicy override not applied")
	}
}

func TestMatcherSymmetry(t *testing.T) {
	m := NewMatcher()
	pairs := [][2]string{
		{"하나투어 46기 인턴 모집", "하나투어 47기 인턴 모집"},
		{"신규 교육 프로그램 진행", "신규 교육 프로그램 실시"},
		{"신한 카드 여름 할인", "국민 카드 적립 혜택"},
	}
	for _, kw := range []string{"하나투어", "할인", "테스트"} {
		for _, p := range pairs {
			if m.Similar(p[0], p[1], kw) != m.Similar(p[1], p[0], kw) {
				t.Errorf("Similar not symmetric for %q under %q", p, kw)
			}
		}
	}
}
