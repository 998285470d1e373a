package scenexml_test

import (
	"sync"
	"testing"

	"github.com/prismforge/scenexml"
)

func TestLoadStringConcurrent(t *testing.T) {
	registerTestClasses(t, "scalar_rgb")

	sceneXML := `<scene version="2.0.0">
  <integrator type="path"><integer name="samples" value="16"/></integrator>
  <bsdf type="diffuse" id="mat"><rgb name="reflectance" value="0.5"/></bsdf>
  <shape type="sphere"><ref id="mat" name="bsdf"/></shape>
  <shape type="cube"><ref id="mat" name="bsdf"/></shape>
</scene>`

	const goroutines = 8
	const iterations = 25

	errCh := make(chan error, goroutines*iterations)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				if _, err := scenexml.LoadString(sceneXML); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Fatalf("concurrent LoadString error: %v", err)
	}
}
