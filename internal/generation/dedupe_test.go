package generation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingExtractor struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingExtractor) Generate(ctx context.Context, req types.GenerationRequest) (*types.ResumeDocument, error) {
	b.calls.Add(1)
	<-b.release
	doc := &types.ResumeDocument{PageLimit: req.PageLimit}
	doc.Normalize()
	return doc, nil
}

func TestDeduper_CollapsesConcurrentIdenticalRequests(t *testing.T) {
	inner := &blockingExtractor{release: make(chan struct{})}
	dedupe := NewDeduper(inner)

	const callers = 5
	var wg sync.WaitGroup
	docs := make([]*types.ResumeDocument, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := dedupe.Generate(context.Background(), validRequest())
			assert.NoError(t, err)
			docs[i] = doc
		}(i)
	}

	// let every caller join the in-flight call before releasing it
	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
	for _, doc := range docs {
		assert.Same(t, docs[0], doc)
	}
}

func TestDeduper_SequentialCallsAreIndependent(t *testing.T) {
	inner := &blockingExtractor{release: make(chan struct{})}
	close(inner.release)
	dedupe := NewDeduper(inner)

	_, err := dedupe.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = dedupe.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestFingerprint(t *testing.T) {
	a := validRequest()
	b := validRequest()
	b.SelectedSections = []types.SectionName{
		types.SectionLanguages, types.SectionSocials, types.SectionContact, types.SectionProjects,
		types.SectionExperience, types.SectionSkills, types.SectionEducation, types.SectionIntroduction,
	}
	assert.Equal(t, Fingerprint(a), Fingerprint(b), "section order must not matter")

	c := validRequest()
	c.PageLimit = 2
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))

	d := validRequest()
	d.RawText += "!"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(d))
}
