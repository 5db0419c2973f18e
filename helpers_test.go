package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pivolan/userbase_dashboard/dataset"
)

const testCSV = "User ID,Subscription Type,Monthly Revenue,Join Date,Last Payment Date,Country,Age,Gender,Device,Plan Duration\n" +
	"1,Basic,10,15-01-22,10-06-23,United States,28,Male,Smartphone,1 Month\n" +
	"2,Premium,15,05/03/2021,22-06-23,Canada,35,Female,Tablet,1 Month\n" +
	"3,Standard,12,28-02-23,27-06-23,United Kingdom,42,Male,Smart TV,1 Month\n" +
	"4,Basic,11.5,10-07-22,26-06-23,Canada,51,Female,Laptop,1 Month\n"

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(strings.NewReader(testCSV))
	require.NoError(t, err)
	return ds
}
