package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/stretchr/testify/suite"
)

type CSVWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func (suite *CSVWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *CSVWriterTestSuite) readRecords(path string) [][]string {
	file, err := os.Open(path)
	suite.Require().NoError(err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	suite.Require().NoError(err)

	return records
}

func (suite *CSVWriterTestSuite) TestWriteRows() {
	path := filepath.Join(suite.tempDir, "bovespa.csv")
	writer := NewCSVWriter(path)
	loc := time.FixedZone("America/Sao_Paulo", -3*60*60)

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(types.MarketData{
		Symbol:      "^BVSP",
		Time:        time.Date(2024, 5, 13, 10, 0, 0, 0, loc),
		Open:        128100.5,
		High:        128500,
		Low:         127800,
		Close:       128150.25,
		AdjClose:    128150.25,
		Volume:      8900000,
		Dividends:   0,
		StockSplits: 0,
	}))

	outputPath, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(path, outputPath)
	suite.NoError(writer.Close())

	records := suite.readRecords(path)
	suite.Require().Len(records, 2)
	suite.Equal(CSVHeader, records[0])
	suite.Equal([]string{"2024-05-13T10:00:00-03:00", "128100.5", "128500", "127800", "128150.25", "128150.25", "8900000", "0", "0"}, records[1])
}

func (suite *CSVWriterTestSuite) TestHeaderOnly() {
	path := filepath.Join(suite.tempDir, "empty.csv")
	writer := NewCSVWriter(path)

	suite.Require().NoError(writer.Initialize())
	_, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.NoError(writer.Close())

	records := suite.readRecords(path)
	suite.Require().Len(records, 1)
	suite.Equal(CSVHeader, records[0])
}

func (suite *CSVWriterTestSuite) TestTruncatesReservedFile() {
	path := filepath.Join(suite.tempDir, "reserved.csv")
	suite.Require().NoError(os.WriteFile(path, []byte("stale content\nmore\n"), 0o644))

	writer := NewCSVWriter(path)
	suite.Require().NoError(writer.Initialize())
	_, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.NoError(writer.Close())

	suite.Len(suite.readRecords(path), 1)
}

func (suite *CSVWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewCSVWriter(filepath.Join(suite.tempDir, "no_init.csv"))

	err := writer.Write(types.MarketData{})
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")

	_, err = writer.Finalize()
	suite.Error(err)
}

func (suite *CSVWriterTestSuite) TestInitializeMissingDirectory() {
	writer := NewCSVWriter(filepath.Join(suite.tempDir, "missing", "out.csv"))

	err := writer.Initialize()
	suite.Error(err)
	suite.NoError(writer.Close())
}
