package db

import (
	"testing"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/dosrevive/model"
	"github.com/stretchr/testify/assert"
)

// fakeClient keeps items in memory. Unimplemented API calls panic through
// the nil embedded interface.
type fakeClient struct {
	dynamodbiface.DynamoDBAPI
	items      map[string]map[string]*dynamodb.AttributeValue
	writeCalls int
	// number of write calls that leave their last item unprocessed
	throttle int
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeClient) BatchWriteItem(in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
	f.writeCalls++
	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]*dynamodb.WriteRequest{}}
	for table, requests := range in.RequestItems {
		if f.throttle > 0 && len(requests) > 0 {
			f.throttle--
			out.UnprocessedItems[table] = requests[len(requests)-1:]
			requests = requests[:len(requests)-1]
		}
		for _, r := range requests {
			item := r.PutRequest.Item
			f.items[*item["PK"].S] = item
		}
	}
	return out, nil
}

func (f *fakeClient) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]*dynamodb.AttributeValue{}}
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			if item, ok := f.items[*key["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func summary(id string) model.ChartSummary {
	return model.ChartSummary{
		Id:          id,
		Path:        "charts/" + id + ".dos",
		ScoreNumber: 2,
		NumPages:    4,
		NumNotes:    120,
		NumFreezes:  7,
		NumChords:   12,
		ChordCounts: map[string]int{"0-1": 9, "2-4": 3},
		Bpms:        []float64{150, 180.5},
		Seconds:     93.25,
		Length:      "1:33",
	}
}

func TestItemConversion(t *testing.T) {
	s := summary("a")
	assert.Equal(t, s, fromItem(toItem(s)))

	s.Path = ""
	_, hasPath := toItem(s)["Path"]
	assert.False(t, hasPath)
}

func TestPutAndGet(t *testing.T) {
	client := newFakeClient()
	lib := NewLibraryWithClient(client, "charts")

	var summaries []model.ChartSummary
	for _, id := range []string{"a", "b", "c"} {
		summaries = append(summaries, summary(id))
	}
	assert.NoError(t, lib.PutChartSummaries(summaries))

	got, err := lib.GetChartSummaries([]string{"a", "c", "missing"})
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(got, 2)
	assert.Equal(summary("c"), got["c"])
}

func TestPutBatchesAndRetries(t *testing.T) {
	client := newFakeClient()
	client.throttle = 1
	lib := NewLibraryWithClient(client, "charts")

	var summaries []model.ChartSummary
	for i := 0; i < 30; i++ {
		summaries = append(summaries, summary(string(rune('a'+i))))
	}
	assert.NoError(t, lib.PutChartSummaries(summaries))
	assert.Len(t, client.items, 30)
	// two batches plus one retry
	assert.Equal(t, 3, client.writeCalls)
}

func TestGetRejectsLargeBatches(t *testing.T) {
	lib := NewLibraryWithClient(newFakeClient(), "charts")
	_, err := lib.GetChartSummaries(make([]string, 101))
	assert.Error(t, err)

	got, err := lib.GetChartSummaries(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
