package series_test

import (
	"fmt"

	"github.com/matzehuels/vegaline/pkg/series"
)

func ExampleCollection_Flatten() {
	c := series.Multi([][]series.Point{
		{{X: 0, Y: 1.0}, {X: 1, Y: 1.5}},
		{{X: 0, Y: 2.0}},
	})

	for _, r := range c.Flatten([]string{"CPU"}) {
		fmt.Printf("%s (%g, %g)\n", r.Series, r.X, r.Y)
	}
	// Output:
	// CPU (0, 1)
	// CPU (1, 1.5)
	// Series 2 (0, 2)
}

func ExampleSeriesName() {
	fmt.Println(series.SeriesName([]string{"A"}, 0))
	fmt.Println(series.SeriesName([]string{"A"}, 1))
	// Output:
	// A
	// Series 2
}
