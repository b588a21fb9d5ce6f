// verify_formation 编队位置分配自检
//
// 在全空的占用表上连续分配 N 次，检查结果是否恰好覆盖该类型的格子
// （默认蜜蜂 20 次，覆盖 30..49）。通过时输出 SUCCESS 并以 0 退出，否则输出 FAIL 并以 1 退出。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/systems"
	"github.com/decker502/galaga/pkg/types"
)

var (
	runs        = flag.Int("runs", 20, "分配次数")
	className   = flag.String("class", "bee", "敌机类型: bee / butterfly / boss")
	seed        = flag.Int64("seed", 0, "随机种子（0 表示按当前时间取种）")
	maxAttempts = flag.Int("attempts", 256, "随机重试上限")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	class := types.EnemyClassFromString(*className)
	if class == types.EnemyUnknown {
		fmt.Fprintf(os.Stderr, "未知敌机类型: %s\n", *className)
		os.Exit(2)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("seed %d, class %s, runs %d\n", *seed, class, *runs)

	allocator := systems.NewSlotAllocator(rand.New(rand.NewSource(*seed)), *maxAttempts)
	occupancy := make([]bool, config.FormationSize)

	picks := make([]int, 0, *runs)
	for i := 0; i < *runs; i++ {
		index, err := allocator.PickFormationPosition(class, occupancy)
		if errors.Is(err, systems.ErrSlotsExhausted) {
			fmt.Printf("pick %2d: exhausted\n", i)
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "分配失败: %v\n", err)
			os.Exit(2)
		}
		col, row := config.SlotCoords(index)
		fmt.Printf("pick %2d: slot %2d (col %d, row %d)\n", i, index, col, row)
		picks = append(picks, index)
	}

	if verify(class, picks, *runs) {
		fmt.Println("SUCCESS")
		return
	}
	fmt.Println("FAIL")
	os.Exit(1)
}

// verify 检查分配结果
//
// 成功分配的次数应为 min(runs, 区域大小)，格子互不相同且都在区域内；
// 次数达到区域大小时，排序后必须恰好是整个区域
func verify(class types.EnemyClass, picks []int, runs int) bool {
	lo, hi := systems.ClassSlotRange(class)
	want := min(runs, hi-lo)
	if len(picks) != want {
		fmt.Printf("got %d picks, want %d\n", len(picks), want)
		return false
	}

	sorted := append([]int(nil), picks...)
	sort.Ints(sorted)
	seen := make(map[int]bool, len(sorted))
	for _, index := range sorted {
		if index < lo || index >= hi {
			fmt.Printf("slot %d outside [%d, %d)\n", index, lo, hi)
			return false
		}
		if seen[index] {
			fmt.Printf("slot %d picked twice\n", index)
			return false
		}
		seen[index] = true
	}

	if want == hi-lo {
		for i, index := range sorted {
			if index != lo+i {
				fmt.Printf("sorted picks %v do not cover [%d, %d)\n", sorted, lo, hi)
				return false
			}
		}
	}
	return true
}
