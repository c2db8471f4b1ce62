package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"trinetra.xyz/crowd-alerts/pkg/common"
	alertsGrpc "trinetra.xyz/crowd-alerts/pkg/grpc"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

var maxCameras int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcConn *grpc.ClientConn

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	cameraIDs := make([]string, maxCameras)
	for i := 0; i < maxCameras; i++ {
		cameraIDs[i] = "camera-" + uuid.NewString()[:8]
	}
	fmt.Printf("generated %v camera IDs\n", maxCameras)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	grpcConn, err = grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer grpcConn.Close()

	fmt.Printf("gRPC client connected\n")

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	snapshots := watch(watchCtx)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxCameras; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			postAlert(cameraIDs[i])
			fmt.Printf("\rposted alert for camera %v", i)
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rposted alerts for %v cameras: used time=%v seconds, throughput=%v action/second\n",
		maxCameras, usedTime.Seconds(), float64(maxCameras)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxCameras; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			doAction(cameraIDs[i])
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v cameras: used time=%v seconds, throughput=%v action/second\n",
		maxCameras, usedTime.Seconds(), float64(maxCameras*3)/usedTime.Seconds(),
	)

	stopWatch()
	fmt.Printf("watch stream received %v snapshots\n", <-snapshots)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndInt(max int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Intn(max)
}

func pick[T any](values []T) T {
	return values[rndInt(len(values))]
}

func rndAlertInput(cameraID string) *models.AlertInput {
	policeCount := rndInt(5)
	medicalStaff := rndInt(3)
	return &models.AlertInput{
		Data: &models.CrowdAssessmentInput{
			CrowdLevel:           ptr(pick(models.CrowdLevels)),
			EstimatedPeople:      ptr(rndInt(5000)),
			PoliceRequired:       ptr(policeCount > 0),
			PoliceCount:          ptr(policeCount),
			MedicalRequired:      ptr(medicalStaff > 0),
			MedicalStaffCount:    ptr(medicalStaff),
			Activities:           []string{pick([]string{"walking", "queueing", "gathering", "running", "chanting"})},
			ChokepointsDetected:  ptr(flipCoin()),
			EmergencyAccessClear: ptr(rndInt(10) > 0),
			HarmLikelihood:       ptr(pick([]string{"low", "medium", "high", "very_high"})),
		},
		VideoMetadata: &models.VideoMetadata{
			Filename: cameraID + ".mp4",
			Size:     1024 * (1 + rndInt(4096)),
			Duration: float64(5 + rndInt(55)),
			Location: cameraID,
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func grpcClient(cameraID string) *alertsGrpc.Client {
	return alertsGrpc.NewClient(grpcConn, cameraID)
}

func postAlert(cameraID string) string {
	input := rndAlertInput(cameraID)

	if flipCoin() {
		jsonData, _ := json.Marshal(input)
		req, _ := http.NewRequest("POST", fmt.Sprintf("http://%s/alerts", httpHostPort), bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(common.HeaderClientID, cameraID)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return ""
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			fmt.Printf("\nresponse status code != 201: %v\n", resp.Status)
			return ""
		}
		var record models.AlertRecord
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return ""
		}
		return record.ID
	}

	record, err := grpcClient(cameraID).SaveAlert(context.Background(), input)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return ""
	}
	return record.ID
}

func doAction(cameraID string) {
	var alertID string
	actions := []func(){
		func() { alertID = postAlert(cameraID) },
		genGetAlertsAction(cameraID),
		func() {
			if alertID != "" {
				markRead(cameraID, alertID)
			}
		},
	}
	actionNames := []string{
		"PostAlert",
		"GetAlerts",
		"MarkRead",
	}
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for camera %v", actionNames[index], cameraID)
		time.Sleep(time.Duration(100+rndInt(1000)) * time.Millisecond)
	}
}

func genGetAlertsAction(cameraID string) func() {
	return func() {
		if flipCoin() {
			req, _ := http.NewRequest("GET", fmt.Sprintf("http://%s/alerts?sort=priority&unread=true", httpHostPort), nil)
			req.Header.Set(common.HeaderClientID, cameraID)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
			}
		} else {
			_, err := grpcClient(cameraID).GetAllAlerts(context.Background(), alertsGrpc.ListRequest{Sort: alertsGrpc.SortPriority, Unread: true})
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func markRead(cameraID, alertID string) {
	if flipCoin() {
		req, _ := http.NewRequest("POST", fmt.Sprintf("http://%s/alerts/%s/read", httpHostPort, alertID), nil)
		req.Header.Set(common.HeaderClientID, cameraID)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
		}
	} else if err := grpcClient(cameraID).MarkAlertAsRead(context.Background(), alertID); err != nil {
		fmt.Printf("\nerror: %v\n", err)
	}
}

// watch counts snapshots pushed over the gRPC stream while the load runs.
func watch(ctx context.Context) <-chan int {
	done := make(chan int, 1)
	snapshots, errs, err := grpcClient("benchmark-watcher").WatchAlerts(ctx)
	if err != nil {
		log.Fatal("Failed to open watch stream:", err)
	}
	go func() {
		count := 0
		for range snapshots {
			count++
		}
		if err, ok := <-errs; ok && ctx.Err() == nil {
			fmt.Printf("\nwatch error: %v\n", err)
		}
		done <- count
	}()
	return done
}
