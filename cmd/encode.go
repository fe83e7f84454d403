/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"allocator/domain"
	"allocator/domain/util"
	"allocator/interface/wire"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/tonkeeper/tongo"
)

// encodeCmd builds a deposit forward payload, wraps it in a jetton
// transfer envelope and prints the wire form the transport layer sends.
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encodes a deposit as a jetton transfer envelope",
	Long: `Encodes a deposit forward payload, wraps it in a jetton transfer
envelope and prints the BoC base64 plus the cell hash.`,
	Run: func(cmd *cobra.Command, args []string) {
		payloadCell, err := domain.CreateDepositForwardPayload(domain.DepositForwardPayload{
			DepositId:   depositId,
			InvestorKey: investorKey,
			UsdtAmount:  mustNano(usdtAmount),
			DctAmount:   mustNano(dctAmount),
			ExpectedFx:  expectedFx,
			TonTxHash:   tonTxHash,
		})
		if err != nil {
			log.Fatalf("🔴 building forward payload - %v\n", err.Error())
		}

		dest := mustAddress(destination)
		response := mustAddress(responseDestination)
		forwardTon := mustNano(forwardTonAmount)

		bodyCell, err := domain.CreateJettonTransferBody(domain.JettonTransferBody{
			QueryId:             queryId,
			JettonAmount:        mustNano(usdtAmount),
			Destination:         dest,
			ResponseDestination: response,
			ForwardTonAmount:    forwardTon,
			ForwardPayload:      payloadCell,
		})
		if err != nil {
			log.Fatalf("🔴 building transfer body - %v\n", err.Error())
		}

		bocBase64, err := wire.EncodeToBase64(bodyCell)
		if err != nil {
			log.Fatalf("🔴 encoding transfer body - %v\n", err.Error())
		}
		hash, err := wire.Hash(bodyCell)
		if err != nil {
			log.Fatalf("🔴 hashing transfer body - %v\n", err.Error())
		}

		accid, err := tongo.AccountIDFromRaw(dest.String())
		if err == nil {
			fmt.Printf("destination:  %v\n", accid.ToHuman(true, domain.IsTestNet()))
		}
		fmt.Printf("transferring: %v\n", util.UsdtString(domain.FromNano(mustNano(usdtAmount))))
		fmt.Printf("forward ton:  %v\n", util.NanoToTonString(forwardTon))
		fmt.Printf("cell hash:    %v\n", hex.EncodeToString(hash))
		fmt.Printf("boc:          %v\n", bocBase64)
	},
}

var (
	depositId           uint64
	investorKey         string
	usdtAmount          string
	dctAmount           string
	expectedFx          uint64
	tonTxHash           string
	queryId             uint64
	destination         string
	responseDestination string
	forwardTonAmount    string
)

func mustNano(value string) *big.Int {
	nano, err := domain.ToNano(value)
	if err != nil {
		log.Fatalf("🔴 parsing amount %q - %v\n", value, err.Error())
	}
	return nano
}

func mustAddress(value string) domain.Address {
	addr, err := domain.NewAddress(value)
	if err != nil {
		log.Fatalf("🔴 parsing address %q - %v\n", value, err.Error())
	}
	return addr
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().Uint64Var(&depositId, "deposit-id", 0, "deposit identifier")
	encodeCmd.Flags().StringVar(&investorKey, "investor-key", "", "32-byte investor key as hex")
	encodeCmd.Flags().StringVar(&usdtAmount, "usdt", "0", "usdt amount, decimal")
	encodeCmd.Flags().StringVar(&dctAmount, "dct", "0", "dct amount, decimal")
	encodeCmd.Flags().Uint64Var(&expectedFx, "fx", 1, "expected fx rate")
	encodeCmd.Flags().StringVar(&tonTxHash, "tx-hash", "", "32-byte transaction hash as hex")
	encodeCmd.Flags().Uint64Var(&queryId, "query-id", 0, "transfer query id")
	encodeCmd.Flags().StringVar(&destination, "dest", "", "destination address, raw form")
	encodeCmd.Flags().StringVar(&responseDestination, "response", "", "response address, raw form")
	encodeCmd.Flags().StringVar(&forwardTonAmount, "forward-ton", "0.05", "forwarded ton amount, decimal")
}
