package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"methodology-charts/internal/features/charts"
)

// go run etc/tools/preview_chart.go aave-radar
// in etc/charts/aave-radar-example.png
func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: preview_chart <%s>\n", strings.Join(charts.Names(), "|"))
		os.Exit(1)
	}

	fmt.Println("Generating preview chart...")

	gen, err := charts.NewGenerator("etc/charts")
	if err != nil {
		fmt.Printf("Error creating generator: %v\n", err)
		os.Exit(1)
	}

	paths, err := gen.Only(context.Background(), os.Args[1:2])
	if err != nil {
		fmt.Printf("Error generating chart: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chart generated successfully: %s\n", paths[0])
	fmt.Println("Open the file to see the result!")
}
