package cache_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/trackprobe/cache"
)

func ExampleMemoizer_Resolve() {
	m := cache.NewMemoizer[string](cache.DefaultPolicy())
	ctx := context.Background()

	calls := 0
	probe := func(ctx context.Context) (string, error) {
		calls++
		return "44.1kHz 16bit", nil
	}

	first, _ := m.Resolve(ctx, "1234-LOSSLESS", probe)
	second, _ := m.Resolve(ctx, "1234-LOSSLESS", probe)

	fmt.Println(first)
	fmt.Println(second)
	fmt.Println("calls:", calls)
	// Output:
	// 44.1kHz 16bit
	// 44.1kHz 16bit
	// calls: 1
}

func ExamplePolicy_retainFailures() {
	ctx := context.Background()
	errProbe := errors.New("probe failed")
	failing := func(ctx context.Context) (string, error) { return "", errProbe }
	working := func(ctx context.Context) (string, error) { return "ok", nil }

	retry := cache.NewMemoizer[string](cache.DefaultPolicy())
	_, _ = retry.Resolve(ctx, "1-HIGH", failing)
	v, err := retry.Resolve(ctx, "1-HIGH", working)
	fmt.Println("default:", v, err)

	permanent := cache.NewMemoizer[string](cache.PermanentPolicy())
	_, _ = permanent.Resolve(ctx, "1-HIGH", failing)
	_, err = permanent.Resolve(ctx, "1-HIGH", working)
	fmt.Println("permanent:", err)
	// Output:
	// default: ok <nil>
	// permanent: probe failed
}

func ExamplePairKey() {
	key, _ := cache.PairKey("1234", "HI_RES_LOSSLESS")
	fmt.Println(key)

	id, quality, _ := cache.SplitPairKey(key)
	fmt.Println(id, quality)

	_, err := cache.PairKey("1234", "HI-RES")
	fmt.Println(err)
	// Output:
	// 1234-HI_RES_LOSSLESS
	// 1234 HI_RES_LOSSLESS
	// cache: key part contains the separator
}
