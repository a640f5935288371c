package rlwe

import (
	"fmt"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/utils"
)

// Automorphism computes phi(ct), where phi is the map X -> X^galEl. The method requires
// that the corresponding GaloisKey has been added to the Evaluator. The method will
// panic if either ctIn or ctOut degree is not equal to 1.
func (eval *Evaluator) Automorphism(ctIn *Ciphertext, galEl uint64, ctOut *Ciphertext) {

	if ctIn.Degree() != 1 || ctOut.Degree() != 1 {
		panic("cannot apply Automorphism: input and output Ciphertext must be of degree 1")
	}

	if galEl == 1 {
		if ctOut != ctIn {
			ctOut.Copy(ctIn)
		}
		return
	}

	var evk *GaloisKey
	var err error
	if evk, err = eval.CheckAndGetGaloisKey(galEl); err != nil {
		panic(fmt.Errorf("cannot apply Automorphism: %w", err))
	}

	level := utils.Min(ctIn.Level(), ctOut.Level())

	ctOut.Resize(ctOut.Degree(), level)

	ringQ := eval.params.RingQ().AtLevel(level)

	ctTmp := &Ciphertext{}
	ctTmp.Value = []ring.Poly{*eval.BuffQP[0].Q, *eval.BuffQP[1].Q}
	ctTmp.IsNTT = ctIn.IsNTT

	eval.GadgetProduct(level, &ctIn.Value[1], &evk.GadgetCiphertext, ctTmp)

	ringQ.Add(&ctTmp.Value[0], &ctIn.Value[0], &ctTmp.Value[0])

	if ctIn.IsNTT {
		ringQ.AutomorphismNTTWithIndex(&ctTmp.Value[0], eval.AutomorphismIndex[galEl], &ctOut.Value[0])
		ringQ.AutomorphismNTTWithIndex(&ctTmp.Value[1], eval.AutomorphismIndex[galEl], &ctOut.Value[1])
	} else {
		ringQ.Automorphism(&ctTmp.Value[0], galEl, &ctOut.Value[0])
		ringQ.Automorphism(&ctTmp.Value[1], galEl, &ctOut.Value[1])
	}

	ctOut.MetaData = ctIn.MetaData
}
