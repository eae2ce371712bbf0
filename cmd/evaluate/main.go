// Command evaluate scores a directory of predicted detections against a
// directory of ground-truth annotations and prints a JSON report.
//
// Both directories hold one frame-<N>.json file per frame:
//
//	{"objects": [{"box": [x1, y1, x2, y2], "label": 0, "score": 0.9}]}
//
// Ground-truth objects carry no score. Frames present on one side only are
// scored against an empty counterpart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/nvr-ai/go-eval/boxes"
	"github.com/nvr-ai/go-eval/match"
	"github.com/nvr-ai/go-eval/metrics"
	"github.com/nvr-ai/go-eval/postprocess"
	"github.com/nvr-ai/go-eval/util"
)

const (
	// DefaultIoUThreshold is the match acceptance threshold.
	DefaultIoUThreshold = 0.5
	// DefaultNMSThreshold of 0 disables pre-scoring deduplication.
	DefaultNMSThreshold = 0.0
)

// frameObject is one annotated box within a frame file.
type frameObject struct {
	Box   [4]float32 `json:"box"`
	Label int        `json:"label"`
	Score float32    `json:"score,omitempty"`
}

// frameAnnotations is the payload of a single frame file.
type frameAnnotations struct {
	Objects []frameObject `json:"objects"`
}

func main() {
	var (
		predDir      string
		truthDir     string
		numClasses   int
		iouThreshold float64
		nmsThreshold float64
		classNames   string
	)

	flag.StringVar(&predDir, "pred", "", "Directory of predicted frame-<N>.json files")
	flag.StringVar(&truthDir, "truth", "", "Directory of ground-truth frame-<N>.json files")
	flag.IntVar(&numClasses, "classes", 0, "Total number of classes")
	flag.Float64Var(&iouThreshold, "iou", DefaultIoUThreshold, "IoU threshold for accepting a match")
	flag.Float64Var(&nmsThreshold, "nms", DefaultNMSThreshold, "Greedy NMS IoU threshold applied to predictions before scoring (0 disables)")
	flag.StringVar(&classNames, "names", "", "Comma-separated class names for the report")
	flag.Parse()

	if predDir == "" || truthDir == "" {
		flag.Usage()
		os.Exit(2)
	}
	if numClasses <= 0 {
		log.Fatalf("classes must be positive, got %d", numClasses)
	}

	predFrames, err := loadFrames(predDir)
	if err != nil {
		log.Fatalf("Failed to load predictions: %v", err)
	}
	truthFrames, err := loadFrames(truthDir)
	if err != nil {
		log.Fatalf("Failed to load ground truth: %v", err)
	}

	config := &match.Config{IoUThreshold: float32(iouThreshold)}
	accumulator := metrics.NewAccumulator(numClasses)

	for _, frame := range frameNumbers(predFrames, truthFrames) {
		pred := toDetections(predFrames[frame], float32(nmsThreshold))
		truth := toGroundTruth(truthFrames[frame])

		result, err := match.Match(pred, truth, numClasses, config)
		if err != nil {
			log.Fatalf("Failed to match frame %d: %v", frame, err)
		}
		if err := accumulator.Add(result); err != nil {
			log.Fatalf("Failed to accumulate frame %d: %v", frame, err)
		}
	}

	var names []string
	if classNames != "" {
		names = strings.Split(classNames, ",")
	}

	report := accumulator.Summarize(names)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	fmt.Println(string(out))
}

// loadFrames reads a directory of frame files into a frame-indexed map.
func loadFrames(dir string) (map[int]frameAnnotations, error) {
	files, err := util.LoadDirectoryAnnotationFiles(dir)
	if err != nil {
		return nil, err
	}

	frames := make(map[int]frameAnnotations, len(files))
	for _, file := range files {
		var annotations frameAnnotations
		if err := json.Unmarshal(file.Data, &annotations); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", file.Path, err)
		}
		frames[file.Frame] = annotations
	}
	return frames, nil
}

// frameNumbers returns the union of frame numbers across both sides,
// sorted ascending.
func frameNumbers(pred, truth map[int]frameAnnotations) []int {
	seen := make(map[int]bool, len(pred)+len(truth))
	for frame := range pred {
		seen[frame] = true
	}
	for frame := range truth {
		seen[frame] = true
	}

	frames := make([]int, 0, len(seen))
	for frame := range seen {
		frames = append(frames, frame)
	}
	sort.Ints(frames)
	return frames
}

func toDetections(annotations frameAnnotations, nmsThreshold float32) match.Detections {
	detections := make([]postprocess.Detection, len(annotations.Objects))
	for i, obj := range annotations.Objects {
		detections[i] = postprocess.Detection{
			Box:   boxes.Box{X1: obj.Box[0], Y1: obj.Box[1], X2: obj.Box[2], Y2: obj.Box[3]},
			Score: obj.Score,
			Class: obj.Label,
		}
	}

	if nmsThreshold > 0 {
		detections = postprocess.ApplyGreedyNMS(detections, &postprocess.NMSConfig{
			IoUThreshold: nmsThreshold,
			ClassAware:   true,
		})
	}

	pred := match.Detections{
		Boxes:  make([]boxes.Box, len(detections)),
		Labels: make([]int, len(detections)),
		Scores: make([]float32, len(detections)),
	}
	for i, det := range detections {
		pred.Boxes[i] = det.Box
		pred.Labels[i] = det.Class
		pred.Scores[i] = det.Score
	}
	return pred
}

func toGroundTruth(annotations frameAnnotations) match.GroundTruth {
	truth := match.GroundTruth{
		Boxes:  make([]boxes.Box, len(annotations.Objects)),
		Labels: make([]int, len(annotations.Objects)),
	}
	for i, obj := range annotations.Objects {
		truth.Boxes[i] = boxes.Box{X1: obj.Box[0], Y1: obj.Box[1], X2: obj.Box[2], Y2: obj.Box[3]}
		truth.Labels[i] = obj.Label
	}
	return truth
}
