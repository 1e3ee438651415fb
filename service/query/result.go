package query

import (
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Result is one of NoData, Text, Block, Transaction, LedgerInfo, Chaincodes or Channels.
type Result interface {
	isResult()
}

// NoData is returned when the network answered successfully with nothing.
type NoData struct{}

// Text is a chaincode response payload.
type Text string

// Block is a ledger block.
type Block struct {
	*common.Block
}

// Transaction is a processed transaction with its validation code.
type Transaction struct {
	*pb.ProcessedTransaction
}

// LedgerInfo holds base64 encoded hashes of the last two blocks.
type LedgerInfo struct {
	CurrentBlockHash  string `json:"currentBlockHash"`
	PreviousBlockHash string `json:"previousBlockHash"`
}

type Chaincode struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

type Chaincodes []Chaincode

type Channel struct {
	ChannelID string `json:"channelId"`
}

type Channels []Channel

func (NoData) isResult()      {}
func (Text) isResult()        {}
func (Block) isResult()       {}
func (Transaction) isResult() {}
func (LedgerInfo) isResult()  {}
func (Chaincodes) isResult()  {}
func (Channels) isResult()    {}
