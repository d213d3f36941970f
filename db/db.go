package db

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// DynamoDB batch limits
const maxBatchWrite = 25
const maxBatchGet = 100

const maxWriteAttempts = 5

// Library stores chart summaries in a DynamoDB table keyed by chart id.
type Library struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewLibrary() (*Library, error) {
	endpoint := constants.GetDynamoEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not create a new DynamoDB session because %w", err)
	}
	return NewLibraryWithClient(dynamodb.New(session), constants.GetChartTable()), nil
}

func NewLibraryWithClient(client dynamodbiface.DynamoDBAPI, table string) *Library {
	return &Library{client: client, table: table}
}

func number(v float64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(v, 'f', -1, 64))}
}

func toItem(s model.ChartSummary) map[string]*dynamodb.AttributeValue {
	bpms := make([]*dynamodb.AttributeValue, 0, len(s.Bpms))
	for _, bpm := range s.Bpms {
		bpms = append(bpms, number(bpm))
	}
	chordCounts := make(map[string]*dynamodb.AttributeValue, len(s.ChordCounts))
	for key, n := range s.ChordCounts {
		chordCounts[key] = number(float64(n))
	}
	item := map[string]*dynamodb.AttributeValue{
		"PK":          {S: aws.String(s.Id)},
		"ScoreNumber": number(float64(s.ScoreNumber)),
		"NumPages":    number(float64(s.NumPages)),
		"NumNotes":    number(float64(s.NumNotes)),
		"NumFreezes":  number(float64(s.NumFreezes)),
		"NumChords":   number(float64(s.NumChords)),
		"ChordCounts": {M: chordCounts},
		"Bpms":        {L: bpms},
		"Seconds":     number(s.Seconds),
		"Length":      {S: aws.String(s.Length)},
	}
	if s.Path != "" {
		item["Path"] = &dynamodb.AttributeValue{S: aws.String(s.Path)}
	}
	return item
}

func readNumber(v *dynamodb.AttributeValue) float64 {
	if v == nil || v.N == nil {
		return 0
	}
	n, _ := strconv.ParseFloat(*v.N, 64)
	return n
}

func readString(v *dynamodb.AttributeValue) string {
	if v == nil || v.S == nil {
		return ""
	}
	return *v.S
}

func fromItem(v map[string]*dynamodb.AttributeValue) model.ChartSummary {
	var s model.ChartSummary
	s.Id = readString(v["PK"])
	s.Path = readString(v["Path"])
	s.ScoreNumber = int(readNumber(v["ScoreNumber"]))
	s.NumPages = int(readNumber(v["NumPages"]))
	s.NumNotes = int(readNumber(v["NumNotes"]))
	s.NumFreezes = int(readNumber(v["NumFreezes"]))
	s.NumChords = int(readNumber(v["NumChords"]))
	s.Seconds = readNumber(v["Seconds"])
	s.Length = readString(v["Length"])
	s.ChordCounts = make(map[string]int)
	if counts := v["ChordCounts"]; counts != nil {
		for key, n := range counts.M {
			s.ChordCounts[key] = int(readNumber(n))
		}
	}
	s.Bpms = []float64{}
	if bpms := v["Bpms"]; bpms != nil {
		for _, bpm := range bpms.L {
			s.Bpms = append(s.Bpms, readNumber(bpm))
		}
	}
	return s
}

func (l *Library) writeBatch(requests []*dynamodb.WriteRequest) error {
	pending := map[string][]*dynamodb.WriteRequest{l.table: requests}
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		out, err := l.client.BatchWriteItem(&dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("Error from DynamoDB: %w", err)
		}
		if len(out.UnprocessedItems[l.table]) == 0 {
			return nil
		}
		pending = out.UnprocessedItems
	}
	return fmt.Errorf("DynamoDB left %v items unprocessed", len(pending[l.table]))
}

func (l *Library) PutChartSummaries(summaries []model.ChartSummary) error {
	for start := 0; start < len(summaries); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(summaries) {
			end = len(summaries)
		}
		var requests []*dynamodb.WriteRequest
		for _, s := range summaries[start:end] {
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: toItem(s)},
			})
		}
		if err := l.writeBatch(requests); err != nil {
			return err
		}
	}
	return nil
}

func (l *Library) GetChartSummaries(ids []string) (map[string]model.ChartSummary, error) {
	if len(ids) > maxBatchGet {
		return nil, fmt.Errorf("Not supposed to pass in more than %v ids", maxBatchGet)
	}

	res := make(map[string]model.ChartSummary)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}

	// TODO: retry UnprocessedKeys when the table is throttled
	dbres, err := l.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			l.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error from DynamoDB: %w", err)
	}

	for _, v := range dbres.Responses[l.table] {
		s := fromItem(v)
		res[s.Id] = s
	}
	return res, nil
}
