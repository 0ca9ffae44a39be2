package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/proofgate/addrproof/pkg/sign"
	"github.com/proofgate/addrproof/pkg/verify"
)

// job mirrors the jobs-file schema the addrproof batch command reads.
type job struct {
	ID            string `json:"id"`
	PubKeyX       string `json:"pub_key_x"`
	PubKeyY       string `json:"pub_key_y"`
	Signature     string `json:"signature"`
	Digest        string `json:"digest"`
	TargetAddress string `json:"target_address"`
}

func main() {
	var (
		validFlag   = flag.Int("valid", 100, "Number of valid jobs to generate")
		mutatedFlag = flag.Int("mutated", 100, "Number of single-bit-mutated jobs to generate")
		outFlag     = flag.String("out", "jobs.json", "Output jobs file path")
		seedFlag    = flag.Int64("seed", 1, "Seed for mutation positions")
	)

	flag.Parse()

	rnd := rand.New(rand.NewSource(*seedFlag))
	jobs := make([]job, 0, *validFlag+*mutatedFlag)

	for i := 0; i < *validFlag; i++ {
		j, err := makeValidJob(i)
		if err != nil {
			log.Fatalf("Error generating valid job %d: %v", i, err)
		}
		jobs = append(jobs, j)
	}

	for i := 0; i < *mutatedFlag; i++ {
		base, err := makeValidJob(*validFlag + i)
		if err != nil {
			log.Fatalf("Error generating mutation base %d: %v", i, err)
		}
		j, err := mutateJob(rnd, base, i)
		if err != nil {
			log.Fatalf("Error mutating job %d: %v", i, err)
		}
		jobs = append(jobs, j)
	}

	checkCorpus(jobs, *validFlag)

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling jobs: %v", err)
	}
	if err := os.WriteFile(*outFlag, data, 0644); err != nil {
		log.Fatalf("Error writing jobs file: %v", err)
	}

	fmt.Printf("Wrote %d jobs (%d valid, %d mutated) to %s\n",
		len(jobs), *validFlag, *mutatedFlag, *outFlag)
}

// makeValidJob signs a fresh digest with a fresh in-memory key and packages
// the attested tuple as a batch job.
func makeValidJob(i int) (job, error) {
	signer, err := sign.NewRandomSigner()
	if err != nil {
		return job{}, err
	}

	digest := crypto.Keccak256Hash([]byte(fmt.Sprintf("addrproof corpus entry %d", i)))
	raw, err := sign.Attest(signer, digest)
	if err != nil {
		return job{}, err
	}

	return job{
		ID:            fmt.Sprintf("valid-%03d", i),
		PubKeyX:       raw.PubKeyX,
		PubKeyY:       raw.PubKeyY,
		Signature:     raw.Signature,
		Digest:        raw.Digest,
		TargetAddress: raw.TargetAddress,
	}, nil
}

// mutateJob flips one random bit in one of the five fields. The recovery byte
// of a 65-byte signature is skipped because verification strips it unread; a
// flip there would leave the job valid.
func mutateJob(rnd *rand.Rand, src job, i int) (job, error) {
	out := src
	out.ID = fmt.Sprintf("mutated-%03d", i)

	field := rnd.Intn(5)
	var hexStr string
	switch field {
	case 0:
		hexStr = src.PubKeyX
	case 1:
		hexStr = src.PubKeyY
	case 2:
		hexStr = src.Signature
	case 3:
		hexStr = src.Digest
	case 4:
		hexStr = src.TargetAddress
	}

	raw, err := hexutil.Decode(ensurePrefix(hexStr))
	if err != nil {
		return job{}, fmt.Errorf("failed to decode field %d: %w", field, err)
	}

	flippable := len(raw)
	if field == 2 && flippable == 65 {
		flippable = 64
	}
	pos := rnd.Intn(flippable * 8)
	raw[pos/8] ^= 1 << (pos % 8)
	flipped := hexutil.Encode(raw)

	switch field {
	case 0:
		out.PubKeyX = flipped
	case 1:
		out.PubKeyY = flipped
	case 2:
		out.Signature = flipped
	case 3:
		out.Digest = flipped
	case 4:
		out.TargetAddress = flipped
	}
	return out, nil
}

func ensurePrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}

// checkCorpus runs every job through both evaluation contexts before the file
// is written: the first validCount jobs must verify, the rest must not, and
// the contexts must agree on all of them.
func checkCorpus(jobs []job, validCount int) {
	for i, j := range jobs {
		in, err := verify.ParseInputs(verify.RawInputs{
			PubKeyX:       j.PubKeyX,
			PubKeyY:       j.PubKeyY,
			Signature:     j.Signature,
			Digest:        j.Digest,
			TargetAddress: j.TargetAddress,
		})
		if err != nil {
			log.Fatalf("Job %s does not decode: %v", j.ID, err)
		}

		outcome, err := verify.CrossCheck(in)
		if err != nil {
			log.Fatalf("Evaluation contexts diverged on job %s: %v", j.ID, err)
		}
		if i < validCount && !outcome.Valid {
			log.Fatalf("Job %s should verify but does not: %s", j.ID, outcome)
		}
		if i >= validCount && outcome.Valid {
			log.Fatalf("Mutated job %s still verifies", j.ID)
		}
	}
}
