package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestUsageTracking_AccumulatesIntoSink(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5}},
	)
	p := WithUsageTracking(mock)

	var total Usage
	ctx := WithUsageSink(context.Background(), &total)
	for i := 0; i < 2; i++ {
		if _, err := p.Generate(ctx, Request{Purpose: PurposeGrade}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	want := Usage{InputTokens: 13, OutputTokens: 7, TotalTokens: 20}
	if total != want {
		t.Errorf("sink = %+v, want %+v", total, want)
	}
}

func TestUsageTracking_NoSinkIsFine(t *testing.T) {
	p := WithUsageTracking(NewMockProvider(MockText("ok")))
	if _, err := p.Generate(context.Background(), Request{Purpose: PurposeHint}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUsageTracking_SkipsFailedCalls(t *testing.T) {
	p := WithUsageTracking(NewMockProvider()) // empty queue fails

	var total Usage
	ctx := WithUsageSink(context.Background(), &total)
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}
	if total != (Usage{}) {
		t.Errorf("sink = %+v, want zero", total)
	}
}
