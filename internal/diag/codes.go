package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// semantic errors raised while lowering
	SemaInfo                       Code = 3000
	SemaError                      Code = 3001
	SemaRedeclaration              Code = 3002
	SemaUndeclaredIdentifier       Code = 3003
	SemaInvalidCast                Code = 3004
	SemaInvalidOperandType         Code = 3005
	SemaReferenceOfReference       Code = 3006
	SemaArrayOfReference           Code = 3007
	SemaPointerToReference         Code = 3008
	SemaInvalidArraySize           Code = 3009
	SemaRequiresLValue             Code = 3010
	SemaReferenceTypeMismatch      Code = 3011
	SemaAssignToRValue             Code = 3012
	SemaNotCallable                Code = 3013
	SemaArgumentCountMismatch      Code = 3014
	SemaInvalidIndexOperand        Code = 3015
	SemaIndexNotInteger            Code = 3016
	SemaReturnTypeMismatch         Code = 3017
	SemaReferenceMustBeInitialized Code = 3018
	SemaVoidVariable               Code = 3019
	SemaEntrypointNotFound         Code = 3020
	SemaUnsupportedType            Code = 3021
	SemaMissingReturn              Code = 3022
	SemaInvalidDeclarator          Code = 3023

	// implicit conversions (warnings unless a policy escalates them)
	SemaImplicitIntCast     Code = 3100
	SemaImplicitIntToFloat  Code = 3101
	SemaImplicitFloatToInt  Code = 3102
	SemaImplicitFloatCast   Code = 3103
	SemaImplicitPointerCast Code = 3104

	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                    "Unknown error",
		SemaInfo:                       "Semantic information",
		SemaError:                      "Semantic error",
		SemaRedeclaration:              "Redeclaration",
		SemaUndeclaredIdentifier:       "Undeclared identifier",
		SemaInvalidCast:                "Invalid cast",
		SemaInvalidOperandType:         "Invalid operand type",
		SemaReferenceOfReference:       "Reference to reference",
		SemaArrayOfReference:           "Array of reference",
		SemaPointerToReference:         "Pointer to reference",
		SemaInvalidArraySize:           "Invalid array size",
		SemaRequiresLValue:             "Expression is not an lvalue",
		SemaReferenceTypeMismatch:      "Reference type mismatch",
		SemaAssignToRValue:             "Assignment to rvalue",
		SemaNotCallable:                "Expression is not callable",
		SemaArgumentCountMismatch:      "Argument count mismatch",
		SemaInvalidIndexOperand:        "Invalid index operand",
		SemaIndexNotInteger:            "Index is not an integer",
		SemaReturnTypeMismatch:         "Return type mismatch",
		SemaReferenceMustBeInitialized: "Reference must be initialized",
		SemaVoidVariable:               "Variable of void type",
		SemaEntrypointNotFound:         "Entry function not found",
		SemaUnsupportedType:            "Unsupported type",
		SemaMissingReturn:              "Missing return in function",
		SemaInvalidDeclarator:          "Invalid declarator",
		SemaImplicitIntCast:            "Implicit integer cast",
		SemaImplicitIntToFloat:         "Implicit integer to float point cast",
		SemaImplicitFloatToInt:         "Implicit float point to integer cast",
		SemaImplicitFloatCast:          "Implicit float point cast",
		SemaImplicitPointerCast:        "Implicit pointer cast",
		IOLoadFileError:                "I/O load file error",
		IODecodeError:                  "AST decode error",
		ObsInfo:                        "Observability information",
		ObsTimings:                     "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
