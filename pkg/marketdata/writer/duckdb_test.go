package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupSuite() {
	// Create a temporary directory for test output
	tempDir, err := os.MkdirTemp("", "duckdb-writer-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
}

func (suite *DuckDBWriterTestSuite) TearDownSuite() {
	// Cleanup temp directory
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *DuckDBWriterTestSuite) bar(i int) types.MarketData {
	return types.MarketData{
		Symbol:   "^BVSP",
		Time:     time.Date(2024, 5, 13+i, 13, 0, 0, 0, time.UTC),
		Open:     128000.0 + float64(i),
		High:     128500.0 + float64(i),
		Low:      127500.0 + float64(i),
		Close:    128200.0 + float64(i),
		AdjClose: 128200.0 + float64(i),
		Volume:   9000000.0,
	}
}

func (suite *DuckDBWriterTestSuite) countParquetRows(path string) int {
	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	var count int
	err = db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM read_parquet('%s')", path)).Scan(&count)
	suite.Require().NoError(err)

	return count
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath)

	suite.NotNil(writer)
	suite.Equal(outputPath, writer.GetOutputPath())

	// Cast to check internal state
	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_no_init.parquet"))

	err := writer.Write(suite.bar(0))
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_finalize_no_init.parquet"))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflow() {
	outputPath := filepath.Join(suite.tempDir, "test_workflow.parquet")
	writer := NewDuckDBWriter(outputPath)

	suite.Require().NoError(writer.Initialize())

	// Written out of order, exported by time
	for _, i := range []int{3, 0, 2, 1, 4} {
		suite.Require().NoError(writer.Write(suite.bar(i)))
	}

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)
	suite.NoError(writer.Close())

	suite.Equal(5, suite.countParquetRows(path))

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	var firstClose float64
	err = db.QueryRow(fmt.Sprintf("SELECT close FROM read_parquet('%s') LIMIT 1", path)).Scan(&firstClose)
	suite.Require().NoError(err)
	suite.Equal(128200.0, firstClose)
}

func (suite *DuckDBWriterTestSuite) TestOverwritesReservedFile() {
	path, err := ReserveOutputPath(suite.tempDir, "bovespa", "parquet", time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	writer := NewDuckDBWriter(path)
	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(suite.bar(0)))

	_, err = writer.Finalize()
	suite.Require().NoError(err)
	suite.NoError(writer.Close())

	suite.Equal(1, suite.countParquetRows(path))
}

func (suite *DuckDBWriterTestSuite) TestFinalizeExportError() {
	// Use an invalid path that cannot be written to
	writer := NewDuckDBWriter("/nonexistent/directory/test.parquet")

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(suite.bar(0)))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "failed to export to Parquet")

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestCloseWithActiveTransaction() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close_active.parquet"))

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(suite.bar(0)))

	suite.NoError(writer.Close())

	duckWriter := writer.(*DuckDBWriter)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestDoubleClose() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_double_close.parquet"))

	suite.Require().NoError(writer.Initialize())
	suite.NoError(writer.Close())
	suite.NoError(writer.Close())
}
