package lexical

import "testing"

func buildTestIndex() *Index {
	idx := NewIndex()
	idx.Build(
		[]string{"c0", "c1", "c2"},
		[]string{
			"Học phí khối 10 là 500 nghìn mỗi tháng",
			"Trung tâm có chi nhánh tại Hà Nội và Đà Nẵng",
			"Lịch nghỉ lễ Quốc Khánh tháng 9",
		},
	)
	return idx
}

func TestSearchRanksMatchingDocumentFirst(t *testing.T) {
	idx := buildTestIndex()

	hits := idx.Search("học phí khối 10", 4)
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}
	if hits[0].Id != "c0" {
		t.Errorf("expected c0 first, got %s", hits[0].Id)
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	idx := NewIndex()
	ids := make([]string, 10)
	texts := make([]string, 10)
	for i := range ids {
		ids[i] = string(rune('a' + i))
		texts[i] = "tuyển sinh thông tin chung"
	}
	idx.Build(ids, texts)

	if hits := idx.Search("tuyển sinh", 3); len(hits) > 3 {
		t.Errorf("limit violated: %d hits", len(hits))
	}
}

func TestSearchNoMatchReturnsNothing(t *testing.T) {
	idx := buildTestIndex()
	if hits := idx.Search("zzzz", 4); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := NewIndex()
	if hits := idx.Search("anything", 4); hits != nil {
		t.Errorf("expected nil, got %v", hits)
	}
}

func TestBuildReplacesCorpus(t *testing.T) {
	idx := buildTestIndex()
	idx.Build([]string{"only"}, []string{"một tài liệu duy nhất"})

	if idx.Size() != 1 {
		t.Errorf("size = %d, want 1", idx.Size())
	}
	if hits := idx.Search("học phí", 4); len(hits) != 0 {
		t.Errorf("old corpus still searchable: %v", hits)
	}
}

func TestTokenizeKeepsDiacritics(t *testing.T) {
	tokens := Tokenize("Học-phí: 500k!")
	want := []string{"học", "phí", "500k"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}
