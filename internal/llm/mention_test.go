package llm

import "testing"

func TestMentionRoundTrip(t *testing.T) {
	encoded := EncodeMention("Kim Chul-soo")
	if encoded != "@{Kim Chul-soo}" {
		t.Fatalf("unexpected marker form %q", encoded)
	}
	if decoded := DecodeMention(encoded); decoded != "Kim Chul-soo" {
		t.Fatalf("expected round trip, got %q", decoded)
	}
}

func TestDecodeMentionPassthrough(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Kim Chul-soo", want: "Kim Chul-soo"},
		{input: "", want: ""},
		{input: "@Kim", want: "@Kim"},
		{input: "hand this to @{Lee Young-hee} please", want: "Lee Young-hee"},
	}
	for _, testCase := range tests {
		if got := DecodeMention(testCase.input); got != testCase.want {
			t.Fatalf("DecodeMention(%q) = %q, want %q", testCase.input, got, testCase.want)
		}
	}
}
