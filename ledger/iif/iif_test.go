package iif_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/mdhowey/ledgerbin/ledger/iif"
	"github.com/shopspring/decimal"
)

const sampleDepositIIF = "!ACCNT\tNAME\tACCNTTYPE\tDESC\tACCNUM\tEXTRA\n" +
	"!TRNS\tTRNSID\tTRNSTYPE\tDATE\tACCNT\tNAME\tCLASS\tAMOUNT\tDOCNUM\tMEMO\tCLEAR\n" +
	"!SPL\tSPLID\tTRNSTYPE\tDATE\tACCNT\tNAME\tCLASS\tAMOUNT\tDOCNUM\tMEMO\tCLEAR\n" +
	"!ENDTRNS\n" +
	"TRNS\t \tDEPOSIT\t7/1/1998\tChecking\t\t\t10000\t\t\tN\n" +
	"SPL\t\tDEPOSIT\t7/1/1998\tIncome\tCustomer\t\t-10000\t\t\tN\n" +
	"ENDTRNS\n"

func TestDecode(t *testing.T) {
	dec := iif.NewDecoder(bytes.NewReader([]byte(sampleDepositIIF)))
	f, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	if len(f.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (ACCNT header, TRNS/SPL/ENDTRNS group)", len(f.Blocks))
	}

	accntBlock := f.Blocks[0]
	wantAccntHeaders := []iif.Header{
		{Type: "ACCNT", Fields: []string{"NAME", "ACCNTTYPE", "DESC", "ACCNUM", "EXTRA"}},
	}
	if !reflect.DeepEqual(accntBlock.Headers, wantAccntHeaders) {
		t.Errorf("ACCNT headers = %+v, want %+v", accntBlock.Headers, wantAccntHeaders)
	}

	trnsBlock := f.Blocks[1]
	if len(trnsBlock.Records) != 1 || len(trnsBlock.Records[0]) != 3 {
		t.Fatalf("TRNS block records = %+v, want one group of 3 records", trnsBlock.Records)
	}

	trns := trnsBlock.Records[0][0]
	if trns.Type != "TRNS" || trns.Fields["ACCNT"] != "Checking" || trns.Fields["AMOUNT"] != "10000" {
		t.Errorf("TRNS record = %+v", trns)
	}

	spl := trnsBlock.Records[0][1]
	if spl.Type != "SPL" || spl.Fields["ACCNT"] != "Income" || spl.Fields["AMOUNT"] != "-10000" {
		t.Errorf("SPL record = %+v", spl)
	}
}

func TestDeserializeTransactionsFromDecodedFile(t *testing.T) {
	dec := iif.NewDecoder(bytes.NewReader([]byte(sampleDepositIIF)))
	f, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	var txs []iif.Transaction
	for _, b := range f.Blocks {
		got, err := iif.DeserializeTransactions(b)
		if err != nil {
			t.Fatalf("DeserializeTransactions: %v", err)
		}
		txs = append(txs, got...)
	}

	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Tr.Account != "Checking" {
		t.Errorf("Tr.Account = %q, want Checking", tx.Tr.Account)
	}
	if tx.Tr.Amount.Commodity == nil || tx.Tr.Amount.Commodity.Symbol != "$" {
		t.Errorf("Tr.Amount.Commodity = %+v, want symbol $", tx.Tr.Amount.Commodity)
	}
	if !tx.Tr.Amount.Quantity.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Tr.Amount.Quantity = %v, want 10000", tx.Tr.Amount.Quantity)
	}
	if len(tx.Splits) != 1 || tx.Splits[0].Account != "Income" {
		t.Errorf("Splits = %+v, want one split against Income", tx.Splits)
	}
}
